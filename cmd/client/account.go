package main

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"acadiasafe/internal/domain"
	"acadiasafe/internal/forms"
)

func (a *app) loginCmd() *cobra.Command {
	var f forms.Login
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with your Acadia email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.session.Login(cmd.Context(), f); err != nil {
				return err
			}
			green.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", a.session.User().FullName)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.Email, "email", "", "campus email")
	cmd.Flags().StringVar(&f.Password, "password", "", "password")
	return cmd
}

func (a *app) signupCmd() *cobra.Command {
	var f forms.Signup
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.session.Signup(cmd.Context(), f); err != nil {
				return err
			}
			green.Fprintf(cmd.OutOrStdout(), "Welcome, %s\n", a.session.User().FullName)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.FullName, "name", "", "full name")
	cmd.Flags().StringVar(&f.Email, "email", "", "campus email (@acadiau.ca)")
	cmd.Flags().StringVar(&f.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&f.Password, "password", "", "password, at least 6 characters")
	cmd.Flags().StringVar(&f.ConfirmPassword, "confirm", "", "repeat the password")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.session.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func (a *app) meCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show your profile and emergency numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.signedIn(cmd.Context()); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printUser(out, a.session.User())

			fmt.Fprintln(out)
			bold.Fprintln(out, "Emergency numbers")
			for _, n := range domain.EmergencyDirectory {
				fmt.Fprintf(out, "  %-18s %s\n", n.Name, n.Phone)
			}
			return nil
		},
	}
}

func (a *app) profileCmd() *cobra.Command {
	var name, phone, ecName, ecPhone string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update profile fields; only the flags given are changed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.signedIn(cmd.Context()); err != nil {
				return err
			}
			var req domain.UpdateProfileRequest
			if cmd.Flags().Changed("name") {
				req.FullName = &name
			}
			if cmd.Flags().Changed("phone") {
				req.Phone = &phone
			}
			if cmd.Flags().Changed("emergency-name") {
				req.EmergencyContactName = &ecName
			}
			if cmd.Flags().Changed("emergency-phone") {
				req.EmergencyContactPhone = &ecPhone
			}
			if req.Empty() {
				return fmt.Errorf("nothing to update")
			}

			user, err := a.session.UpdateProfile(cmd.Context(), req)
			if err != nil {
				return err
			}
			printUser(cmd.OutOrStdout(), user)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&ecName, "emergency-name", "", "emergency contact name")
	cmd.Flags().StringVar(&ecPhone, "emergency-phone", "", "emergency contact phone")
	return cmd
}

func (a *app) contactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Manage trusted contacts",
	}

	list := &cobra.Command{
		Use:  "list",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.signedIn(cmd.Context()); err != nil {
				return err
			}
			contacts, err := a.api.Contacts.List(cmd.Context())
			if err != nil {
				return err
			}
			printContacts(cmd.OutOrStdout(), contacts)
			return nil
		},
	}

	var f forms.Contact
	add := &cobra.Command{
		Use:  "add",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := forms.Validate(f); err != nil {
				return err
			}
			if err := a.signedIn(cmd.Context()); err != nil {
				return err
			}
			c, err := a.api.Contacts.Add(cmd.Context(), f.Request())
			if err != nil {
				return err
			}
			green.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", c.Name, c.ID)
			return nil
		},
	}
	add.Flags().StringVar(&f.Name, "name", "", "contact name")
	add.Flags().StringVar(&f.Phone, "phone", "", "contact phone")
	add.Flags().StringVar(&f.Relationship, "relationship", "", "e.g. friend, roommate")

	del := &cobra.Command{
		Use:  "delete <id>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid contact id %q", args[0])
			}
			if err := a.signedIn(cmd.Context()); err != nil {
				return err
			}
			if err := a.api.Contacts.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Contact removed")
			return nil
		},
	}

	cmd.AddCommand(list, add, del)
	return cmd
}

func printUser(w io.Writer, u *domain.User) {
	bold.Fprintln(w, u.FullName)
	fmt.Fprintf(w, "  email  %s\n", u.Email)
	fmt.Fprintf(w, "  phone  %s\n", u.Phone)
	if u.EmergencyContactName != nil {
		phone := ""
		if u.EmergencyContactPhone != nil {
			phone = *u.EmergencyContactPhone
		}
		fmt.Fprintf(w, "  emergency contact  %s %s\n", *u.EmergencyContactName, phone)
	}
}

func printContacts(w io.Writer, contacts []domain.TrustedContact) {
	if len(contacts) == 0 {
		faint.Fprintln(w, "No trusted contacts yet")
		return
	}
	for _, c := range contacts {
		rel := ""
		if c.Relationship != nil {
			rel = " (" + *c.Relationship + ")"
		}
		fmt.Fprintf(w, "%s  %s %s%s\n", c.ID, c.Name, c.Phone, rel)
	}
}
