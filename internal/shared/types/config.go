package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Profile string `json:"profile" yaml:"profile" toml:"profile"`
	Dir     string `json:"dir" yaml:"dir" toml:"dir"`
	Debug   bool   `json:"debug" yaml:"debug" toml:"debug"`

	CodeArtifactDomain        string   `json:"codeartifact_domain" yaml:"codeartifact_domain" toml:"codeartifact_domain"`
	GitHost                   string   `json:"git_host" yaml:"git_host" toml:"git_host"`
	GitWorkspace              string   `json:"git_workspace" yaml:"git_workspace" toml:"git_workspace"`
	OAuthSecretID             string   `json:"oauth_secret_id" yaml:"oauth_secret_id" toml:"oauth_secret_id"`
	BasicAuthUsername         string   `json:"basic_auth_username" yaml:"basic_auth_username" toml:"basic_auth_username"`
	CustomImageRepository     string   `json:"custom_image_repository" yaml:"custom_image_repository" toml:"custom_image_repository"`
	CustomImageURI            string   `json:"custom_image_uri" yaml:"custom_image_uri" toml:"custom_image_uri"`
	TeamsNotificationFunction string   `json:"teams_notification_function" yaml:"teams_notification_function" toml:"teams_notification_function"`
	PrivateProjects           []string `json:"private_projects" yaml:"private_projects" toml:"private_projects"`
}

// DefaultConfig retorna a configuração padrão usada quando nenhum arquivo é informado.
func DefaultConfig() *Config {
	return &Config{
		CodeArtifactDomain:        "foobar",
		GitHost:                   "bitbucket.org",
		GitWorkspace:              "foobar-products-development",
		OAuthSecretID:             "bitbucket/foobar-products-development/oauth-consumer/amplify-app-create",
		BasicAuthUsername:         "foobar-admin",
		CustomImageRepository:     "foobar/node",
		CustomImageURI:            "public.ecr.aws/q0o6a4s6/foobar/node",
		TeamsNotificationFunction: "AmplifyMsTeamsNotification",
		PrivateProjects:           []string{"bird", "cat", "cow", "dog", "fish", "lion"},
	}
}

// Merge sobrescreve os valores padrão com os valores não vazios de other.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	setIfNotEmpty := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	setIfNotEmpty(&c.Profile, other.Profile)
	setIfNotEmpty(&c.Dir, other.Dir)
	setIfNotEmpty(&c.CodeArtifactDomain, other.CodeArtifactDomain)
	setIfNotEmpty(&c.GitHost, other.GitHost)
	setIfNotEmpty(&c.GitWorkspace, other.GitWorkspace)
	setIfNotEmpty(&c.OAuthSecretID, other.OAuthSecretID)
	setIfNotEmpty(&c.BasicAuthUsername, other.BasicAuthUsername)
	setIfNotEmpty(&c.CustomImageRepository, other.CustomImageRepository)
	setIfNotEmpty(&c.CustomImageURI, other.CustomImageURI)
	setIfNotEmpty(&c.TeamsNotificationFunction, other.TeamsNotificationFunction)
	if other.Debug {
		c.Debug = true
	}
	if len(other.PrivateProjects) > 0 {
		c.PrivateProjects = other.PrivateProjects
	}
}

// GitSSHURL returns the SSH clone URL of a repository in the configured workspace.
func (c *Config) GitSSHURL(repo string) string {
	return "git@" + c.GitHost + ":" + c.GitWorkspace + "/" + repo + ".git"
}

// GitHTTPSURL returns the HTTPS URL of a repository in the configured workspace.
func (c *Config) GitHTTPSURL(repo string) string {
	return "https://" + c.GitHost + "/" + c.GitWorkspace + "/" + repo
}
