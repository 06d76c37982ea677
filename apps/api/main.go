package main

import (
	"log"
	"os"
	"path/filepath"

	echoapi "github.com/tolberthub/admissions/apps/api/echo"
	"github.com/tolberthub/admissions/core"
	"github.com/tolberthub/admissions/core/student"
	emailsvc "github.com/tolberthub/admissions/services/email"
	logsvc "github.com/tolberthub/admissions/services/logger"
	"github.com/tolberthub/admissions/storage/filestore"
)

func main() {
	conf := core.NewConfig()

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.Debug {
		logger = core.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	// set up the student store
	dataFile := conf.DataFile
	if !filepath.IsAbs(dataFile) {
		dataFile = filepath.Join(conf.WorkDir, dataFile)
	}
	repo := filestore.NewStudentStore(dataFile)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	studentSvc := student.NewService(repo, mailSvc)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:       conf.Server.Addr,
			Conf:       conf,
			Logger:     logger,
			StudentSvc: studentSvc,
		},
	)
	app.Start()
}
