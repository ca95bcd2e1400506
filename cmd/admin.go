package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage the admin passcode",
}

var adminSetPinCmd = &cobra.Command{
	Use:   "set-pin",
	Short: "Set or change the passcode that guards the admin screen",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		if err := checkCurrentPin(cmd, e); err != nil {
			return err
		}

		pin, err := readSecret("New passcode: ")
		if err != nil {
			return err
		}
		again, err := readSecret("Repeat passcode: ")
		if err != nil {
			return err
		}
		if pin != again {
			return errors.New("passcodes do not match")
		}
		if err := e.deps.Roster.SetPin(ctx, pin); err != nil {
			return err
		}
		fmt.Println("Admin passcode set.")
		return nil
	},
}

var adminClearPinCmd = &cobra.Command{
	Use:   "clear-pin",
	Short: "Remove the admin passcode",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if !e.deps.Roster.HasPin(cmd.Context()) {
			fmt.Println("No admin passcode is set.")
			return nil
		}
		if err := checkCurrentPin(cmd, e); err != nil {
			return err
		}
		if err := e.deps.Roster.ClearPin(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Admin passcode removed.")
		return nil
	},
}

// checkCurrentPin asks for the existing passcode when one is set.
func checkCurrentPin(cmd *cobra.Command, e *env) error {
	ctx := cmd.Context()
	if !e.deps.Roster.HasPin(ctx) {
		return nil
	}
	cur, err := readSecret("Current passcode: ")
	if err != nil {
		return err
	}
	return e.deps.Roster.CheckPin(ctx, cur)
}

func init() {
	adminCmd.AddCommand(adminSetPinCmd)
	adminCmd.AddCommand(adminClearPinCmd)
}
