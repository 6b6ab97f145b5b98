// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bundle ships the snippet sources with the binary.
package bundle

import (
	"context"
	"embed"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/wpsnip/pkg/log"
	"github.com/walteh/wpsnip/pkg/snippet"
	"github.com/walteh/wpsnip/pkg/status"
)

//go:embed snippets/*.json
var files embed.FS

// Source returns the bundled source file for mode
func Source(mode snippet.Mode) []byte {
	data, err := files.ReadFile("snippets/" + mode.SourceFile())
	if err != nil {
		// both sources are embedded at build time
		panic(err)
	}
	return data
}

// 📦 Install writes the bundled sources into dir. The active file starts as a
// copy of the Full source and is only created when missing, so a user's
// chosen mode survives a reinstall. force overwrites every file.
func Install(ctx context.Context, dir string, force bool) error {
	logger := zerolog.Ctx(ctx)
	console := log.FromContext(ctx)
	mgr := status.New(dir)

	for _, mode := range []snippet.Mode{snippet.Full, snippet.Flat} {
		name := mode.SourceFile()
		if err := write(ctx, mgr, name, Source(mode), force); err != nil {
			return err
		}
		console.LogFileOperation(ctx, log.FileOperation{
			Path:   name,
			Mode:   mode.String(),
			Status: "installed",
		})
	}

	exists, err := mgr.Exists(ctx, snippet.ActiveFile)
	if err != nil {
		return errors.Errorf("checking %s: %w", snippet.ActiveFile, err)
	}
	if exists && !force {
		logger.Debug().Str("dir", dir).Msg("keeping existing active snippet file")
		return nil
	}

	st, err := mgr.CopyFile(ctx, snippet.FullSourceFile, snippet.ActiveFile)
	if err != nil {
		return errors.Errorf("installing %s: %w", snippet.ActiveFile, err)
	}
	console.LogFileOperation(ctx, log.FileOperation{
		Path:       snippet.ActiveFile,
		Mode:       snippet.Full.String(),
		Status:     st.String(),
		IsNew:      st == status.StatusNew,
		IsModified: st == status.StatusModified,
	})
	return nil
}

func write(ctx context.Context, mgr *status.Manager, name string, data []byte, force bool) error {
	if !force {
		exists, err := mgr.Exists(ctx, name)
		if err != nil {
			return errors.Errorf("checking %s: %w", name, err)
		}
		if exists {
			return nil
		}
	}
	if err := mgr.WriteFileAtomic(ctx, name, data); err != nil {
		return errors.Errorf("installing %s: %w", name, err)
	}
	return nil
}
