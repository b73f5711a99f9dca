package internal

const (
	DotEnvPath    = "./.env"
	ConfigPath    = "config.json"
	MigrationsDir = "migrations"

	// Scripts invoked by generated build steps, relative to the repository root.
	ScriptConfigureGoEnv          = "./scripts/configure_goenv.sh"
	ScriptProviderUnitTests       = "./scripts/provider_tests/unit_tests.sh"
	ScriptProviderAcceptanceTests = "./scripts/provider_tests/acceptance_tests.sh"
	ScriptCompileTestBinary       = "./scripts/service_tests/compile_test_binary.sh"
	ScriptServiceAcceptanceTests  = "./scripts/service_tests/acceptance_tests.sh"
	ScriptSweeper                 = "./scripts/sweeper.sh"
	ScriptPullRequestTests        = "./scripts/pullrequest_tests/tests.sh"

	ServiceDirRoot     = "./internal/service"
	DefaultTestPattern = "TestAcc"
)
