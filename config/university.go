package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type University struct {
	ID           string   `toml:"id"`
	Name         string   `toml:"name"`
	EmailDomains []string `toml:"email_domains"`
	Departments  []string `toml:"departments"`
}

type UniversityDirectory struct {
	Universities []University `toml:"university"`
}

func LoadUniversityDirectory(path string) (UniversityDirectory, error) {
	var dir UniversityDirectory
	if _, err := toml.DecodeFile(path, &dir); err != nil {
		return dir, fmt.Errorf("cannot decode university directory %s: %w", path, err)
	}

	return dir, nil
}

// ByEmail returns the university whose allow-listed domains contain the
// domain of email. Subdomains of an allow-listed domain match too.
func (d UniversityDirectory) ByEmail(email string) (University, bool) {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return University{}, false
	}

	domain := strings.ToLower(email[at+1:])
	for _, u := range d.Universities {
		for _, allowed := range u.EmailDomains {
			allowed = strings.ToLower(allowed)
			if domain == allowed || strings.HasSuffix(domain, "."+allowed) {
				return u, true
			}
		}
	}

	return University{}, false
}

// HasDepartment reports whether department is listed. A university without a
// department list accepts any.
func (u University) HasDepartment(department string) bool {
	if len(u.Departments) == 0 {
		return true
	}

	for _, d := range u.Departments {
		if d == department {
			return true
		}
	}

	return false
}

func (d UniversityDirectory) ByID(id string) (University, bool) {
	for _, u := range d.Universities {
		if u.ID == id {
			return u, true
		}
	}

	return University{}, false
}
