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

package testutils

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/walteh/wpsnip/pkg/host"
)

var _ host.Host = (*MockHost)(nil)

// MockHost is a testify mock of host.Host. Show* calls are recorded and only
// need expectations when a test asserts on them.
type MockHost struct {
	mock.Mock

	Infos    []string
	Warnings []string
	Errors   []string
}

func (m *MockHost) ShowInfo(ctx context.Context, msg string) {
	m.Infos = append(m.Infos, msg)
}

func (m *MockHost) ShowWarning(ctx context.Context, msg string) {
	m.Warnings = append(m.Warnings, msg)
}

func (m *MockHost) ShowError(ctx context.Context, msg string) {
	m.Errors = append(m.Errors, msg)
}

func (m *MockHost) Prompt(ctx context.Context, msg string, choices ...string) (string, error) {
	args := m.Called(ctx, msg, choices)
	return args.String(0), args.Error(1)
}

func (m *MockHost) Reload(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
