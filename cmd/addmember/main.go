// Command addmember inserts a member directly into the sqlite backend,
// bootstrapping the first admin before anyone can log in.
package main

import (
	"context"
	"flag"
	"os"

	"sportsfund/internal/cli"
	"sportsfund/internal/core"
	"sportsfund/internal/log"
	"sportsfund/internal/storage"
)

func main() {
	var (
		name  = flag.String("name", "", "member name (required)")
		phone = flag.String("phone", "", "phone number used to log in (required)")
		email = flag.String("email", "", "email address")
		role  = flag.String("role", "member", "role: member or admin")
	)
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	u := core.User{
		Name:  *name,
		Phone: *phone,
		Email: *email,
		Role:  core.Role(*role),
	}
	if err := u.Validate(); err != nil {
		logger.Error("Invalid member", log.FieldError, err)
		flag.Usage()
		os.Exit(1)
	}
	if !u.Role.IsValid() {
		logger.Error("Invalid role", "role", *role)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open sqlite database", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	created, err := repo.CreateUser(context.Background(), u)
	if err != nil {
		logger.Error("Failed to create member", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Member created",
		log.FieldUserID, created.ID,
		"name", created.Name,
		"role", created.Role)
}
