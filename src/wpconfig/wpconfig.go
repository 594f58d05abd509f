package wpconfig

import (
	"os"
	"regexp"
)

// Credentials are the database connection values extracted from a site's
// wp-config.php. They live in memory for the duration of one workflow run
// and must never be logged or persisted.
type Credentials struct {
	Name     string
	User     string
	Password string
}

// CredentialsError reports that credentials could not be extracted from a
// config file. It never carries a partial result.
type CredentialsError struct {
	Path   string
	Reason string
}

func (e *CredentialsError) Error() string {
	return "cannot read database credentials from " + e.Path + ": " + e.Reason
}

// Matches define('DB_NAME', 'value'); style declarations, independent of
// order and surrounding content.
var patterns = map[string]*regexp.Regexp{
	"DB_NAME":     regexp.MustCompile(`define\(\s*'DB_NAME'\s*,\s*'([^']+)'\s*\)`),
	"DB_USER":     regexp.MustCompile(`define\(\s*'DB_USER'\s*,\s*'([^']+)'\s*\)`),
	"DB_PASSWORD": regexp.MustCompile(`define\(\s*'DB_PASSWORD'\s*,\s*'([^']+)'\s*\)`),
}

// Extract reads the config file at path and returns all three credential
// fields, or a CredentialsError if the file is unreadable or any field is
// missing.
func Extract(path string) (Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, &CredentialsError{Path: path, Reason: err.Error()}
	}
	found := map[string]string{}
	for key, re := range patterns {
		m := re.FindSubmatch(data)
		if m == nil {
			return Credentials{}, &CredentialsError{Path: path, Reason: key + " not found"}
		}
		found[key] = string(m[1])
	}
	return Credentials{
		Name:     found["DB_NAME"],
		User:     found["DB_USER"],
		Password: found["DB_PASSWORD"],
	}, nil
}
