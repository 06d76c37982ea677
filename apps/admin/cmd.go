package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/tolberthub/admissions/core"
	"github.com/tolberthub/admissions/core/student"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp        = errors.New("help provided")
	errBadAdminPwd = errors.New("admin password rejected")
)

type commandLine struct {
	svc   student.Service
	admin core.AdminIdentity
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  summary - print store totals (students, submissions, issued letters)")
	fmt.Println("  setstatus -student ID -submission ID -status STATUS - set a submission's review status")
	fmt.Println("  issueletter -student ID -submission ID -message MESSAGE - issue an admission letter")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	setStatusCmd := flag.NewFlagSet("setstatus", flag.ExitOnError)
	setStatusStudent := setStatusCmd.String("student", "", "The student's id.")
	setStatusSubmission := setStatusCmd.String("submission", "", "The submission's id.")
	setStatusStatus := setStatusCmd.String("status", "", "The new review status.")

	issueLetterCmd := flag.NewFlagSet("issueletter", flag.ExitOnError)
	issueLetterStudent := issueLetterCmd.String("student", "", "The student's id.")
	issueLetterSubmission := issueLetterCmd.String("submission", "", "The submission's id.")
	issueLetterMessage := issueLetterCmd.String("message", "", "The letter body shown to the student.")

	switch args[1] {
	case "summary":
		return cli.summary()
	case "setstatus":
		if err := setStatusCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *setStatusStudent == "" || *setStatusSubmission == "" || *setStatusStatus == "" {
			setStatusCmd.Usage()
			return errHelp
		}
		if err := cli.authenticate(); err != nil {
			return err
		}
		return cli.setStatus(*setStatusStudent, *setStatusSubmission, *setStatusStatus)
	case "issueletter":
		if err := issueLetterCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *issueLetterStudent == "" || *issueLetterSubmission == "" {
			issueLetterCmd.Usage()
			return errHelp
		}
		if err := cli.authenticate(); err != nil {
			return err
		}
		return cli.issueLetter(*issueLetterStudent, *issueLetterSubmission, *issueLetterMessage)
	default:
		cli.printUsage()
		return errHelp
	}
}

// authenticate gates mutating commands behind the configured admin password.
func (cli *commandLine) authenticate() error {
	fmt.Print("Enter admin password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return err
	}
	if !cli.admin.Authenticate(cli.admin.Email, string(pwd)) {
		return errBadAdminPwd
	}
	return nil
}
