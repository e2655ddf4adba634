package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raktar-project/raktar/pkg/auth"
	"github.com/raktar-project/raktar/pkg/storage"
	"github.com/raktar-project/raktar/pkg/types"
)

// Admin commands operate directly on the document store. They are meant
// to be run on the registry host, typically to seed the first user and
// token before the SSO frontend is wired up.

func openStore(cmd *cobra.Command) (*storage.BoltStore, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.NewBoltStore(cfg.DatabasePath)
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage registry users",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create or update a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		login, _ := cmd.Flags().GetString("login")
		givenName, _ := cmd.Flags().GetString("given-name")
		familyName, _ := cmd.Flags().GetString("family-name")
		if login == "" {
			return fmt.Errorf("--login is required")
		}

		repo, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer repo.Close()

		user, err := repo.UpdateOrCreateUser(types.UserData{
			Login:      login,
			GivenName:  givenName,
			FamilyName: familyName,
		})
		if err != nil {
			return err
		}

		fmt.Printf("User %s has id %d\n", user.Login, user.ID)
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registry users",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer repo.Close()

		users, err := repo.GetUsers()
		if err != nil {
			return err
		}
		for _, user := range users {
			fmt.Printf("%6d  %s  %s %s\n", user.ID, user.Login, user.GivenName, user.FamilyName)
		}
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage registry tokens",
}

var tokenCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Mint a registry token for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetUint32("user-id")
		name, _ := cmd.Flags().GetString("name")
		if userID == 0 {
			return fmt.Errorf("--user-id is required")
		}
		if name == "" {
			return fmt.Errorf("--name is required")
		}

		repo, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer repo.Close()

		user, err := repo.GetUserByID(userID)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("user %d does not exist", userID)
		}

		raw, err := auth.GenerateToken()
		if err != nil {
			return err
		}
		record, err := repo.StoreToken([]byte(raw), name, userID)
		if err != nil {
			return err
		}

		// The raw token is shown exactly once; only its hash is stored.
		fmt.Printf("Token ID: %s\nToken:    %s\n", record.TokenID, raw)
		return nil
	},
}

var tokenRevokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Revoke a registry token",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetUint32("user-id")
		tokenID, _ := cmd.Flags().GetString("token-id")
		if userID == 0 || tokenID == "" {
			return fmt.Errorf("--user-id and --token-id are required")
		}

		repo, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer repo.Close()

		return repo.DeleteToken(userID, tokenID)
	},
}

func init() {
	userAddCmd.Flags().String("login", "", "External login of the user")
	userAddCmd.Flags().String("given-name", "", "Given name")
	userAddCmd.Flags().String("family-name", "", "Family name")
	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)

	tokenCreateCmd.Flags().Uint32("user-id", 0, "Owning user id")
	tokenCreateCmd.Flags().String("name", "", "Token name")
	tokenRevokeCmd.Flags().Uint32("user-id", 0, "Owning user id")
	tokenRevokeCmd.Flags().String("token-id", "", "Token id to revoke")
	tokenCmd.AddCommand(tokenCreateCmd)
	tokenCmd.AddCommand(tokenRevokeCmd)
}
