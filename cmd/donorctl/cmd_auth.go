package main

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Authenticate and store the session token",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	fmt.Print("Password: ")
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return err
	}

	out := a.sessions.Login(cmd.Context(), args[0], string(pw))
	if !out.OK {
		return errors.New(out.Message)
	}
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the session and invalidate the token",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		a.sessions.Logout(cmd.Context())
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the active session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s := a.sessions.Snapshot()
		if !s.Authenticated {
			fmt.Println("not logged in")
			return
		}
		fmt.Printf("%s (%s)\n", s.Username, s.Role)
	},
}
