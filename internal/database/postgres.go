package database

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rauves/backstop/internal/config"
)

// Postgres dumps a database through the psql/pg_dump client tools.
type Postgres struct {
	cfg config.PostgresConfig
}

func (p *Postgres) Name() string { return p.cfg.Name }

func (p *Postgres) String() string {
	return fmt.Sprintf("<POSTGRES %s@%s:%s>", p.cfg.Name, p.cfg.Host, p.cfg.Port)
}

func (p *Postgres) connArgs() []string {
	return []string{
		"-h", p.cfg.Host,
		"-p", p.cfg.Port,
		"-U", p.cfg.Username,
		"-d", p.cfg.Name,
	}
}

// command builds a client invocation with PGPASSWORD set on the child env
// only, so the secret never lands in the backstop process environment.
func (p *Postgres) command(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), "PGPASSWORD="+p.cfg.Password)
	return cmd
}

func (p *Postgres) Test(ctx context.Context) error {
	cmd := p.command(ctx, "psql", append(p.connArgs(), "-c", `\q`)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("connecting to %s: %w: %s", p, err, out)
	}
	return nil
}

func (p *Postgres) Dump(ctx context.Context, dir, stamp string, index int) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("%s_%s_%d.sql", stamp, dumpName(p.cfg.Name), index))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating dump file: %w", err)
	}
	defer f.Close()

	cmd := p.command(ctx, "pg_dump", p.connArgs()...)
	cmd.Stdout = f
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pg_dump %s: %w", p, err)
	}
	if err := f.Sync(); err != nil {
		return "", fmt.Errorf("flushing dump file: %w", err)
	}
	return path, nil
}
