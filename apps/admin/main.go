package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/tolberthub/admissions/core"
	"github.com/tolberthub/admissions/core/student"
	emailsvc "github.com/tolberthub/admissions/services/email"
	"github.com/tolberthub/admissions/storage/filestore"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	dataFile := conf.DataFile
	if !filepath.IsAbs(dataFile) {
		dataFile = filepath.Join(conf.WorkDir, dataFile)
	}
	repo := filestore.NewStudentStore(dataFile)

	// start CLI
	cli := commandLine{
		svc:   student.NewService(repo, emailsvc.NewConsoleService(conf)),
		admin: conf.Admin,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
