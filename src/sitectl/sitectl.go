package sitectl

import (
	"strings"

	"site-backup/src/shellexec"
)

// Tool covers the two external site-management collaborators the restore
// workflow needs: provisioning a placeholder site and reloading the
// webserver.
type Tool interface {
	CreateSite(name string) error
	ReloadWebserver() error
}

// Phase labels used in tool errors.
const (
	PhaseProvision = "site provisioning"
	PhaseReload    = "webserver reload"
)

// ExecTool shells out using the configured command templates. The literal
// token {site} in ProvisionCmd is replaced with the site name.
type ExecTool struct {
	ProvisionCmd []string
	ReloadCmd    []string
}

func (t ExecTool) CreateSite(name string) error {
	argv := make([]string, len(t.ProvisionCmd))
	for i, a := range t.ProvisionCmd {
		argv[i] = strings.ReplaceAll(a, "{site}", name)
	}
	return shellexec.Run(PhaseProvision, argv, nil, nil)
}

func (t ExecTool) ReloadWebserver() error {
	return shellexec.Run(PhaseReload, t.ReloadCmd, nil, nil)
}

// Fake records calls for workflow tests.
type Fake struct {
	Created   []string
	Reloads   int
	CreateErr error
	ReloadErr error

	// OnCreate, when set, runs after recording a create; tests use it to
	// materialize the placeholder site the real provisioner would build.
	OnCreate func(name string) error
}

func (f *Fake) CreateSite(name string) error {
	if f.CreateErr != nil {
		return f.CreateErr
	}
	f.Created = append(f.Created, name)
	if f.OnCreate != nil {
		return f.OnCreate(name)
	}
	return nil
}

func (f *Fake) ReloadWebserver() error {
	f.Reloads++
	return f.ReloadErr
}
