package main

import (
	"fmt"

	"github.com/tolberthub/admissions/core/student"
)

func (cli *commandLine) summary() error {
	sum, err := cli.svc.Summary()
	if err != nil {
		return err
	}
	fmt.Printf("Students:    %d\n", sum.TotalStudents)
	fmt.Printf("Submissions: %d\n", sum.TotalSubmissions)
	fmt.Printf("Letters:     %d\n", sum.IssuedLetters)
	return nil
}

func (cli *commandLine) setStatus(studentID, submissionID, status string) error {
	usr, err := cli.svc.SetStatus(studentID, submissionID, student.StatusUpdate{Status: student.Status(status)})
	if err != nil {
		return err
	}
	fmt.Printf("Updated %s's submission %s to %q.\n", usr.FullName, submissionID, status)
	return nil
}

func (cli *commandLine) issueLetter(studentID, submissionID, message string) error {
	usr, err := cli.svc.IssueLetter(studentID, submissionID, student.LetterRequest{
		Message:  message,
		IssuedBy: cli.admin.Name,
	})
	if err != nil {
		return err
	}
	for _, sub := range usr.Submissions {
		if sub.ID == submissionID && sub.AdmissionLetter != nil {
			fmt.Printf("Issued letter %s to %s.\n", sub.AdmissionLetter.LetterID, usr.FullName)
			return nil
		}
	}
	return nil
}
