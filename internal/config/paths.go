package config

// ProjectConfigFile is the project-level config file name.
const ProjectConfigFile = ".release-notes.yml"

// ProjectConfigPath returns the path to the project-level config file.
// This is always .release-notes.yml relative to the current directory.
func ProjectConfigPath() string {
	return ProjectConfigFile
}

// DotEnvPath returns the path of the dotenv file read for credentials.
func DotEnvPath() string {
	return ".env"
}
