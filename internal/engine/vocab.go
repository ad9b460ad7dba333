package engine

// Vocabulary tables drive the deterministic extractors. Entries carry their
// canonical display casing; all matching is case-insensitive whole-word.

var programmingLanguageVocab = []string{
	"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Go", "Rust",
	"PHP", "Ruby", "Swift", "Kotlin", "Scala", "R", "MATLAB", "SQL",
}

var frameworkToolVocab = []string{
	"React", "Angular", "Vue", "Django", "Flask", "Spring", "Express",
	"Node.js", "Laravel", "Rails", "ASP.NET", "TensorFlow", "PyTorch",
	"Docker", "Kubernetes", "Jenkins", "Git", "Jira", "Confluence",
}

var databaseVocab = []string{
	"MySQL", "PostgreSQL", "MongoDB", "Redis", "Elasticsearch",
	"Oracle", "SQL Server", "SQLite", "Cassandra", "DynamoDB",
}

var cloudPlatformVocab = []string{
	"AWS", "Azure", "GCP", "Google Cloud", "Heroku", "DigitalOcean",
	"S3", "EC2", "Lambda", "CloudFormation", "Terraform",
}

var softSkillVocab = []string{
	"communication", "teamwork", "leadership", "problem solving",
	"analytical thinking", "creativity", "adaptability", "time management",
	"project management", "collaboration", "mentoring", "agile", "scrum",
}

// experienceLevelTable is scanned in order; the first level with a matching
// phrase wins.
var experienceLevelTable = []struct {
	Level    string
	Patterns []string
}{
	{"entry", []string{"entry level", "junior", "0-2 years", "new grad", "graduate"}},
	{"mid", []string{"mid level", "intermediate", "2-5 years", "3-5 years"}},
	{"senior", []string{"senior", "lead", "5+ years", "7+ years", "expert", "principal"}},
	{"executive", []string{"director", "manager", "vp", "cto", "ceo", "head of"}},
}

var educationVocab = []string{
	"bachelor", "master", "phd", "degree", "computer science", "engineering",
	"mathematics", "statistics", "mba", "certification",
}

var jobTypeVocab = []string{
	"full-time", "part-time", "contract", "temporary", "internship", "freelance",
}

// technicalIndicators classify a free-form phrase as a technical skill when
// any indicator occurs as a substring.
var technicalIndicators = []string{
	"programming", "development", "software", "framework", "database",
	"cloud", "api", "web", "mobile", "data", "machine learning",
	"ai", "devops", "testing", "security",
}
