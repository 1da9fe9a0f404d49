package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xyz-asif/goalpath/internal/pkg/filestore"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify storage and file store connectivity",
	Long: `Connects to the configured database and writes, reads back and removes
a check file in the configured file store.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Testing %s connection...\n", cfg.StorageDriver)
	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.close(context.Background())
	if err := store.ping(ctx); err != nil {
		return fmt.Errorf("storage ping failed: %w", err)
	}
	fmt.Fprintf(out, "%s connected\n", cfg.StorageDriver)

	fmt.Fprintf(out, "Testing %s file store...\n", cfg.FileStore)
	files, err := openFileStore(cfg)
	if err != nil {
		return err
	}
	if err := roundTripFileStore(ctx, files); err != nil {
		return fmt.Errorf("file store check failed: %w", err)
	}
	fmt.Fprintf(out, "%s file store ready\n", cfg.FileStore)

	return nil
}

const checkContent = "goalpath"

func roundTripFileStore(ctx context.Context, files filestore.Store) error {
	name := filestore.NewName("check.txt")
	if err := files.Save(ctx, name, strings.NewReader(checkContent)); err != nil {
		return err
	}
	defer files.Remove(ctx, name)

	rc, err := files.Open(ctx, name)
	if err != nil {
		return err
	}
	defer rc.Close()

	buf := make([]byte, len(checkContent))
	if _, err := io.ReadFull(rc, buf); err != nil {
		return err
	}
	if string(buf) != checkContent {
		return fmt.Errorf("check file read back %q", buf)
	}
	return nil
}
