package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cdot/divelog/internal/flagx"
)

// userList lets -u be repeated, accumulating user:password pairs.
type userList []string

func (u *userList) String() string { return strings.Join(*u, ",") }

func (u *userList) Set(v string) error {
	if !strings.Contains(v, ":") {
		return fmt.Errorf("expected user:password, got %q", v)
	}
	*u = append(*u, v)
	return nil
}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-p string   listen address, host:port or :port
//	-f string   file the uploaded CSV is appended to
//	-u string   user:password pair allowed to upload (repeatable)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-p", "-f", "-u"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Addr, "p", cfg.Addr, "listen address")
	fs.StringVar(&cfg.File, "f", cfg.File, "file uploads are appended to")

	users := userList(cfg.Users)
	fs.Var(&users, "u", "user:password pair allowed to upload (repeatable)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.Users = users
}
