package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

// swappable for tests
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "vendicore-cli",
		Short: "Vendicore admin CLI",
		Long:  `A command line interface for the Vendicore admin API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Vendicore API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated calls")

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(fundCmd())
	rootCmd.AddCommand(amendCmd())
	rootCmd.AddCommand(driftCmd())
	rootCmd.AddCommand(hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print a bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doRequest(http.MethodPost, "/login", map[string]any{
				"email":    email,
				"password": password,
			})
			if err != nil {
				return err
			}
			printJSON(data)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "User email")
	cmd.Flags().StringVar(&password, "password", "", "User password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func fundCmd() *cobra.Command {
	var merchantID, amount, description, source string

	cmd := &cobra.Command{
		Use:   "fund",
		Short: "Credit a merchant and record the funding entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doRequest(http.MethodPost, "/api/v1/admin/fundings", map[string]any{
				"merchant_id": merchantID,
				"amount":      amount,
				"description": description,
				"source":      source,
			})
			if err != nil {
				return err
			}
			printJSON(data)
			return nil
		},
	}

	cmd.Flags().StringVar(&merchantID, "merchant", "", "Merchant ID")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to credit")
	cmd.Flags().StringVar(&description, "description", "", "Entry description")
	cmd.Flags().StringVar(&source, "source", "", "Funding source")
	_ = cmd.MarkFlagRequired("merchant")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func amendCmd() *cobra.Command {
	var amount, description, source string

	cmd := &cobra.Command{
		Use:   "amend <reference>",
		Short: "Correct a funding entry without re-chaining the merchant balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doRequest(http.MethodPut, "/api/v1/admin/fundings/"+args[0], map[string]any{
				"amount":      amount,
				"description": description,
				"source":      source,
			})
			if err != nil {
				return err
			}
			printJSON(data)
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "Corrected amount")
	cmd.Flags().StringVar(&description, "description", "", "Entry description")
	cmd.Flags().StringVar(&source, "source", "", "Funding source")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func driftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drift <merchantID>",
		Short: "Report drift between live balance and summed funding entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doRequest(http.MethodGet, "/api/v1/admin/ledger/drift/"+args[0], nil)
			if err != nil {
				return err
			}
			printJSON(data)
			return nil
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for seeding users",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hashed, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hashed))
			return nil
		},
	}
}

// envelope mirrors the API response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func doRequest(method, path string, body any) (any, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("unexpected response (status %d): %s", resp.StatusCode, truncate(string(raw), 200))
	}

	if !env.Success {
		return nil, fmt.Errorf("request failed (status %d): %s", resp.StatusCode, env.Error)
	}

	var data any
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render response: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
