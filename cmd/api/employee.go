package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/sge-backend-go/internal/domain/employee"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var employeeCmd = &cobra.Command{
	Use:   "employee",
	Short: "Manage the employee registry",
}

var employeeAddFlags struct {
	id    string
	name  string
	email string
}

var employeeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register an employee",
	RunE: func(cmd *cobra.Command, args []string) error {
		if employeeAddFlags.name == "" {
			return errors.New("--name is required")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		st, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		id := employeeAddFlags.id
		if id == "" {
			id = uuid.Must(uuid.NewV7()).String()
		}

		created, err := st.Employees.Create(cmd.Context(), employee.Employee{
			ID:        id,
			FullName:  employeeAddFlags.name,
			Email:     employeeAddFlags.email,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), created.ID)
		return nil
	},
}

func init() {
	employeeAddCmd.Flags().StringVar(&employeeAddFlags.id, "id", "", "employee ID (generated when empty)")
	employeeAddCmd.Flags().StringVar(&employeeAddFlags.name, "name", "", "full name")
	employeeAddCmd.Flags().StringVar(&employeeAddFlags.email, "email", "", "email address")
	employeeCmd.AddCommand(employeeAddCmd)
}
