package remote

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Rclone is a Store backed by the rclone binary, so any remote rclone can
// reach (S3, B2, SFTP, ...) works without backend-specific code here.
type Rclone struct {
	remote string // e.g. "b2:bucket/backups"
}

func NewRclone(remote string) *Rclone {
	return &Rclone{remote: remote}
}

func (r *Rclone) run(ctx context.Context, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, "rclone", args...).CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("rclone %s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return out, nil
}

func (r *Rclone) List(ctx context.Context) ([]string, error) {
	out, err := r.run(ctx, "lsf", r.remote)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

func (r *Rclone) Upload(ctx context.Context, localPath string) error {
	_, err := r.run(ctx, "copy", localPath, r.remote)
	return err
}

func (r *Rclone) Delete(ctx context.Context, name string) error {
	_, err := r.run(ctx, "delete", r.remote+"/"+name)
	return err
}
