// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package epg

import (
	"context"
	"fmt"

	"github.com/google/renameio/v2"
	"github.com/ulikunitz/xz"

	xglog "github.com/ManuGH/epg365/internal/log"
)

// WriteFile writes the guide with full durability guarantees using renameio:
// temp file, fsync, atomic rename.
func WriteFile(ctx context.Context, path string, data []byte) error {
	logger := xglog.FromContext(ctx)

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending XMLTV file: %w", err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending XMLTV file")
		}
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write XMLTV data: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace XMLTV file: %w", err)
	}
	return nil
}

// XZPath returns the path of the compressed sibling of path.
func XZPath(path string) string { return path + ".xz" }

// WriteXZ writes an xz-compressed copy of the guide next to path.
func WriteXZ(ctx context.Context, path string, data []byte) error {
	logger := xglog.FromContext(ctx)
	target := XZPath(path)

	pendingFile, err := renameio.NewPendingFile(target, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending xz file: %w", err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending xz file")
		}
	}()

	zw, err := xz.NewWriter(pendingFile)
	if err != nil {
		return fmt.Errorf("create xz writer: %w", err)
	}
	if _, err := zw.Write(data); err != nil {
		return fmt.Errorf("compress XMLTV data: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish xz stream: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace xz file: %w", err)
	}
	return nil
}
