package opts

import (
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/wpsnip/pkg/config"
	"github.com/walteh/wpsnip/pkg/extension"
	"github.com/walteh/wpsnip/pkg/host"
	"github.com/walteh/wpsnip/pkg/log"
	"github.com/walteh/wpsnip/pkg/operation"
	"github.com/walteh/wpsnip/pkg/status"
)

// RootOpts contains shared options used by all commands. It is filled in
// before any command runs.
type RootOpts struct {
	Settings    *config.Store
	SnippetsDir string
	Host        host.Host
	Console     *log.Logger
}

// Files returns a file manager rooted at the snippets directory
func (o *RootOpts) Files() *status.Manager {
	return status.New(o.SnippetsDir)
}

// NewExtension creates an inactive extension over the shared options
func (o *RootOpts) NewExtension() (*extension.Extension, error) {
	if o.Settings == nil {
		return nil, errors.Errorf("settings not loaded")
	}
	return extension.New(extension.Options{
		Settings:    o.Settings,
		Host:        o.Host,
		SnippetsDir: o.SnippetsDir,
	})
}

// NewResolver creates a mode resolver over the shared options
func (o *RootOpts) NewResolver() (*operation.Resolver, error) {
	if o.Settings == nil {
		return nil, errors.Errorf("settings not loaded")
	}
	return operation.New(operation.Options{
		Settings: o.Settings,
		Files:    o.Files(),
		Host:     o.Host,
	})
}
