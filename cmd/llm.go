package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the generation request log",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent generation requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		ctx := cmd.Context()
		repo, err := openRepository(ctx, cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer repo.Close()

		entries, err := repo.Requests(ctx, limit)
		if err != nil {
			return fmt.Errorf("query request log: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No generation requests recorded yet.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-10s  %-24s  %-7s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Provider", "Model", "Key", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 104))

		for _, e := range entries {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			model := e.Model
			if len(model) > 24 {
				model = model[:24]
			}
			fmt.Printf("%-5d  %-19s  %-10s  %-24s  %-7s  %-6d  %-6d  %-7d  %s\n",
				e.ID,
				e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				e.Provider,
				model,
				e.Credential,
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
			if e.ErrorMessage != "" {
				fmt.Printf("       %s\n", e.ErrorMessage)
			}
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View one generation request in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		ctx := cmd.Context()
		repo, err := openRepository(ctx, cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer repo.Close()

		entries, err := repo.Requests(ctx, 0)
		if err != nil {
			return fmt.Errorf("query request log: %w", err)
		}

		for _, e := range entries {
			if e.ID != id {
				continue
			}
			fmt.Printf("ID:          %d\n", e.ID)
			fmt.Printf("Time:        %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			fmt.Printf("Provider:    %s\n", e.Provider)
			fmt.Printf("Model:       %s\n", e.Model)
			fmt.Printf("Purpose:     %s\n", e.Purpose)
			fmt.Printf("Credential:  %s\n", e.Credential)
			fmt.Printf("Tokens:      %d in / %d out\n", e.InputTokens, e.OutputTokens)
			fmt.Printf("Latency:     %dms\n", e.LatencyMs)
			fmt.Printf("Success:     %v\n", e.Success)
			if e.ErrorMessage != "" {
				fmt.Printf("Error:       %s\n", e.ErrorMessage)
			}
			return nil
		}
		return fmt.Errorf("request %d not found", id)
	},
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
}
