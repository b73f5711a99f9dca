package registry

var allServices = []ServiceSpec{
	{Key: "acm", DisplayName: "ACM (Certificate Manager)"},
	{Key: "acmpca", DisplayName: "ACM PCA (Certificate Manager Private Certificate Authority)"},
	{Key: "apigateway", DisplayName: "API Gateway"},
	{Key: "apigatewayv2", DisplayName: "API Gateway V2"},
	{Key: "appautoscaling", DisplayName: "Application Auto Scaling"},
	{Key: "appflow", DisplayName: "AppFlow"},
	{Key: "appmesh", DisplayName: "App Mesh", ParallelismOverride: 10},
	{Key: "apprunner", DisplayName: "App Runner"},
	{Key: "appsync", DisplayName: "AppSync", TestPatternOverride: "TestAccAppSync_serial"},
	{Key: "arcregionswitch", DisplayName: "ARC Region Switch"},
	{Key: "athena", DisplayName: "Athena"},
	{Key: "autoscaling", DisplayName: "Auto Scaling", RequiresExclusiveLock: true},
	{Key: "backup", DisplayName: "Backup"},
	{Key: "batch", DisplayName: "Batch", RequiresExclusiveLock: true},
	{Key: "bedrockagent", DisplayName: "Bedrock Agents", RegionOverride: "us-west-2"},
	{Key: "bedrockagentcore", DisplayName: "Bedrock AgentCore", RegionOverride: "us-west-2"},
	{Key: "chatbot", DisplayName: "Chatbot"},
	{Key: "chimesdkmediapipelines", DisplayName: "Chime SDK Media Pipelines", RegionOverride: "us-east-1"},
	{Key: "cleanrooms", DisplayName: "Clean Rooms"},
	{Key: "cloudformation", DisplayName: "CloudFormation"},
	{Key: "cloudfront", DisplayName: "CloudFront", RegionOverride: "us-east-1", ParallelismOverride: 10},
	{Key: "cloudsearch", DisplayName: "CloudSearch"},
	{Key: "cloudtrail", DisplayName: "CloudTrail", TestPatternOverride: "TestAccCloudTrail_serial"},
	{Key: "cloudwatch", DisplayName: "CloudWatch"},
	{Key: "codebuild", DisplayName: "CodeBuild"},
	{Key: "codepipeline", DisplayName: "CodePipeline"},
	{Key: "cognitoidp", DisplayName: "Cognito IDP (Identity Provider)"},
	{Key: "comprehend", DisplayName: "Comprehend"},
	{Key: "connect", DisplayName: "Connect", TestPatternOverride: "TestAccConnect_serial"},
	{Key: "dataexchange", DisplayName: "Data Exchange"},
	{Key: "datasync", DisplayName: "DataSync", RequiresExclusiveLock: true},
	{Key: "deploy", DisplayName: "CodeDeploy"},
	{Key: "dlm", DisplayName: "DLM (Data Lifecycle Manager)"},
	{Key: "dms", DisplayName: "DMS (Database Migration)", RequiresExclusiveLock: true},
	{Key: "docdb", DisplayName: "DocumentDB", RequiresExclusiveLock: true},
	{Key: "ds", DisplayName: "Directory Service", RequiresExclusiveLock: true, ParallelismOverride: 5},
	{Key: "dynamodb", DisplayName: "DynamoDB"},
	{
		Key:                   "ec2",
		DisplayName:           "EC2 (Elastic Compute Cloud)",
		TestPatternOverride:   "TestAccEC2",
		ExcludePattern:        "TestAccEC2EBS|TestAccEC2Outposts",
		RequiresExclusiveLock: true,
	},
	{
		Key:                 "ec2ebs",
		DisplayName:         "EBS (EC2)",
		TestPatternOverride: "TestAccEC2EBS",
		SplitPackage:        "ec2",
	},
	{
		Key:                 "ec2outposts",
		DisplayName:         "Outposts (EC2)",
		TestPatternOverride: "TestAccEC2Outposts",
		SplitPackage:        "ec2",
	},
	{
		Key:                   "vpc",
		DisplayName:           "VPC (Virtual Private Cloud)",
		TestPatternOverride:   "TestAccVPC",
		SplitPackage:          "ec2",
		RequiresExclusiveLock: true,
	},
	{Key: "ecs", DisplayName: "ECS (Elastic Container)", RequiresExclusiveLock: true},
	{Key: "eks", DisplayName: "EKS (Elastic Kubernetes)", RequiresExclusiveLock: true, ParallelismOverride: 5},
	{Key: "elasticache", DisplayName: "ElastiCache", RequiresExclusiveLock: true},
	{Key: "elasticbeanstalk", DisplayName: "Elastic Beanstalk", RequiresExclusiveLock: true, ParallelismOverride: 10},
	{Key: "elasticsearch", DisplayName: "Elasticsearch", RequiresExclusiveLock: true, ParallelismOverride: 10},
	{Key: "elb", DisplayName: "ELB (Classic)", RequiresExclusiveLock: true},
	{Key: "elbv2", DisplayName: "ELB V2 (Application/Network)", RequiresExclusiveLock: true},
	{Key: "emr", DisplayName: "EMR", RequiresExclusiveLock: true},
	{Key: "events", DisplayName: "EventBridge"},
	{Key: "evidently", DisplayName: "CloudWatch Evidently"},
	{Key: "finspace", DisplayName: "FinSpace", RequiresExclusiveLock: true},
	{Key: "firehose", DisplayName: "Kinesis Firehose"},
	{Key: "fis", DisplayName: "FIS (Fault Injection Simulator)"},
	{Key: "fsx", DisplayName: "FSx", RequiresExclusiveLock: true},
	{Key: "gamelift", DisplayName: "GameLift"},
	{Key: "glue", DisplayName: "Glue"},
	{Key: "guardduty", DisplayName: "GuardDuty", TestPatternOverride: "TestAccGuardDuty_serial"},
	{Key: "iam", DisplayName: "IAM (Identity & Access Management)"},
	{Key: "identitystore", DisplayName: "Identity Store"},
	{Key: "imagebuilder", DisplayName: "EC2 Image Builder", RequiresExclusiveLock: true},
	{Key: "inspector2", DisplayName: "Inspector", TestPatternOverride: "TestAccInspector2_serial"},
	{Key: "iot", DisplayName: "IoT Core"},
	{Key: "kafka", DisplayName: "Managed Streaming for Kafka", RequiresExclusiveLock: true},
	{Key: "kafkaconnect", DisplayName: "Managed Streaming for Kafka Connect", RequiresExclusiveLock: true},
	{Key: "kendra", DisplayName: "Kendra"},
	{Key: "kinesisanalytics", DisplayName: "Kinesis Analytics"},
	{Key: "kinesisanalyticsv2", DisplayName: "Kinesis Analytics V2"},
	{Key: "kms", DisplayName: "KMS (Key Management)"},
	{Key: "lakeformation", DisplayName: "Lake Formation", TestPatternOverride: "TestAccLakeFormation_serial"},
	{Key: "lambda", DisplayName: "Lambda", RequiresExclusiveLock: true},
	{Key: "lexmodels", DisplayName: "Lex Model Building"},
	{Key: "lexv2models", DisplayName: "Lex V2 Models"},
	{Key: "lightsail", DisplayName: "Lightsail", RegionOverride: "us-east-1", ParallelismOverride: 4},
	{Key: "logs", DisplayName: "CloudWatch Logs"},
	{Key: "macie2", DisplayName: "Macie", TestPatternOverride: "TestAccMacie2_serial"},
	{Key: "mediaconnect", DisplayName: "Elemental MediaConnect"},
	{Key: "medialive", DisplayName: "Elemental MediaLive", RequiresExclusiveLock: true},
	{Key: "mediapackage", DisplayName: "Elemental MediaPackage"},
	{Key: "memorydb", DisplayName: "MemoryDB", RequiresExclusiveLock: true},
	{Key: "mq", DisplayName: "MQ", RequiresExclusiveLock: true},
	{Key: "neptune", DisplayName: "Neptune", RequiresExclusiveLock: true},
	{Key: "networkfirewall", DisplayName: "Network Firewall", RequiresExclusiveLock: true},
	{Key: "networkmanager", DisplayName: "Network Manager", RequiresExclusiveLock: true},
	{Key: "odb", DisplayName: "Oracle Database@AWS", RegionOverride: "us-east-1"},
	{Key: "opensearch", DisplayName: "OpenSearch", RequiresExclusiveLock: true, ParallelismOverride: 10},
	{Key: "opsworks", DisplayName: "OpsWorks", RequiresExclusiveLock: true},
	{Key: "pipes", DisplayName: "EventBridge Pipes"},
	{Key: "qbusiness", DisplayName: "Amazon Q Business"},
	{Key: "quicksight", DisplayName: "QuickSight"},
	{Key: "rds", DisplayName: "RDS (Relational Database)", RequiresExclusiveLock: true},
	{Key: "redshift", DisplayName: "Redshift", RequiresExclusiveLock: true},
	{Key: "resiliencehub", DisplayName: "Resilience Hub"},
	{Key: "route53", DisplayName: "Route 53", RegionOverride: "us-east-1"},
	{Key: "s3", DisplayName: "S3 (Simple Storage)"},
	{Key: "sagemaker", DisplayName: "SageMaker AI", RequiresExclusiveLock: true},
	{Key: "scheduler", DisplayName: "EventBridge Scheduler"},
	{Key: "securityhub", DisplayName: "Security Hub", TestPatternOverride: "TestAccSecurityHub_serial"},
	{Key: "sns", DisplayName: "SNS (Simple Notification)"},
	{Key: "sqs", DisplayName: "SQS (Simple Queue)"},
	{Key: "ssm", DisplayName: "SSM (Systems Manager)"},
	{Key: "ssmincidents", DisplayName: "SSM Incident Manager Incidents", TestPatternOverride: "TestAccSSMIncidents_serial"},
	{Key: "storagegateway", DisplayName: "Storage Gateway", RequiresExclusiveLock: true},
	{Key: "synthetics", DisplayName: "CloudWatch Synthetics", RequiresExclusiveLock: true},
	{Key: "transfer", DisplayName: "Transfer Family", RequiresExclusiveLock: true},
	{Key: "wafv2", DisplayName: "WAF"},
	{Key: "workspacesweb", DisplayName: "WorkSpaces Web"},
}
