package memory

import "github.com/secmon-lab/riskscope/pkg/domain/interfaces"

// ErrNotFound is returned when a requested entry does not exist
var ErrNotFound = interfaces.ErrNotFound
