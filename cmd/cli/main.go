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
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "farebox-cli",
		Short: "Farebox CLI tool",
		Long:  `A command line interface for interacting with the Farebox API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Farebox API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Account commands
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	registerCmd := &cobra.Command{
		Use:   "register [name] [email]",
		Short: "Register a new rider account",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/accounts", map[string]any{
				"name":  args[0],
				"email": args[1],
			})
		},
	}

	dashboardCmd := &cobra.Command{
		Use:   "dashboard [account-id]",
		Short: "Show an account with its full settlement history",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/" + args[0] + "/dashboard")
		},
	}

	accountCmd.AddCommand(registerCmd, dashboardCmd)
	rootCmd.AddCommand(accountCmd)

	// Offering commands
	offeringCmd := &cobra.Command{
		Use:   "offerings",
		Short: "Offering catalog operations",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all offerings",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/offerings")
		},
	}

	offeringCmd.AddCommand(listCmd)
	rootCmd.AddCommand(offeringCmd)

	// Settlement commands
	purchaseCmd := &cobra.Command{
		Use:   "purchase [account-id] [offering-id]",
		Short: "Purchase a pass offering for an account",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/accounts/"+args[0]+"/entitlements", map[string]any{
				"offering_id": args[1],
			})
		},
	}
	rootCmd.AddCommand(purchaseCmd)

	travelCmd := &cobra.Command{
		Use:   "travel [account-id] [distance]",
		Short: "Charge a travel distance against an account",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/accounts/"+args[0]+"/trips", map[string]any{
				"start":    map[string]float64{"lat": 0, "lng": 0},
				"end":      map[string]float64{"lat": 0, "lng": 0},
				"distance": args[1],
			})
		},
	}
	rootCmd.AddCommand(travelCmd)

	ticketCmd := &cobra.Command{
		Use:   "ticket [account-id] [origin] [destination]",
		Short: "Purchase a one-off ticket",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			postJSON("/api/v1/accounts/"+args[0]+"/tickets", map[string]any{
				"origin":      args[1],
				"destination": args[2],
			})
		},
	}
	rootCmd.AddCommand(ticketCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func postJSON(path string, payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Printf("Status: %d\n%s\n", resp.StatusCode, string(body))
		return
	}

	fmt.Printf("Status: %d\n%s\n", resp.StatusCode, pretty.String())

	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}
