package registry

// Services whose acceptance tests need an organization management account.
var orgAccountServices = []ServiceSpec{
	{Key: "backup", DisplayName: "Backup", TestPatternOverride: "TestAccBackupGlobalSettings_basic"},
	{Key: "cloudformation", DisplayName: "CloudFormation", TestPatternOverride: "TestAccCloudFormationStackSet"},
	{Key: "cloudtrail", DisplayName: "CloudTrail", TestPatternOverride: "TestAccCloudTrail_serial/Trail/organization"},
	{Key: "guardduty", DisplayName: "GuardDuty", TestPatternOverride: "TestAccGuardDuty_serial/OrganizationAdminAccount"},
	{Key: "inspector2", DisplayName: "Inspector", TestPatternOverride: "TestAccInspector2_serial/DelegatedAdminAccount"},
	{Key: "macie2", DisplayName: "Macie", TestPatternOverride: "TestAccMacie2_serial/OrganizationAdminAccount"},
	{Key: "securityhub", DisplayName: "Security Hub", TestPatternOverride: "TestAccSecurityHub_serial/OrganizationAdminAccount"},
	{Key: "iam", DisplayName: "IAM (Identity & Access Management)", TestPatternOverride: "TestAccIAMOrganizationsFeatures"},
}
