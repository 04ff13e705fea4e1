package main

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	request "estimate_service/internal/adapter/http/dto/request"
	"estimate_service/internal/adapter/persistence/repository"
	"estimate_service/internal/domain/calculation"
	"estimate_service/internal/domain/entities"
	"estimate_service/internal/infrastructure/database"
	"estimate_service/internal/infrastructure/session"
	"estimate_service/internal/usecase"
	"estimate_service/internal/usecase/interfaces"

	"github.com/spf13/cobra"
)

var (
	sessionUserID int64
	sessionName   string
	sessionTTL    time.Duration

	rootCmd = &cobra.Command{
		Use:           "estimatectl",
		Short:         "Administrative tasks for the estimate service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	createTablesCmd = &cobra.Command{
		Use:   "create-tables",
		Short: "Create the DynamoDB tables used by the service (local development)",
		Args:  cobra.NoArgs,
		RunE:  runCreateTables,
	}

	purgeCmd = &cobra.Command{
		Use:   "purge [estimate-id]",
		Short: "Permanently remove an estimate with all of its revisions and sections",
		Args:  cobra.ExactArgs(1),
		RunE:  runPurge,
	}

	calcCmd = &cobra.Command{
		Use:   "calc [file.json]",
		Short: "Calculate a section tree without saving it (use - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE:  runCalcFile,
	}

	issueSessionCmd = &cobra.Command{
		Use:   "issue-session",
		Short: "Store a bearer token for a user in the session store (local development)",
		Args:  cobra.NoArgs,
		RunE:  runIssueSession,
	}

	revokeSessionCmd = &cobra.Command{
		Use:   "revoke-session [token]",
		Short: "Remove a bearer token from the session store",
		Args:  cobra.ExactArgs(1),
		RunE:  runRevokeSession,
	}
)

func init() {
	issueSessionCmd.Flags().Int64Var(&sessionUserID, "user-id", 0, "user id the token authenticates")
	issueSessionCmd.Flags().StringVar(&sessionName, "name", "", "display name recorded as revision author")
	issueSessionCmd.Flags().DurationVar(&sessionTTL, "ttl", 12*time.Hour, "token lifetime")
	_ = issueSessionCmd.MarkFlagRequired("user-id")
	_ = issueSessionCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(createTablesCmd, purgeCmd, calcCmd, issueSessionCmd, revokeSessionCmd)
}

func runCreateTables(cmd *cobra.Command, _ []string) error {
	ddb, err := database.ConnectDynamoDB(cmd.Context())
	if err != nil {
		return err
	}
	return repository.CreateTables(cmd.Context(), ddb, repository.TableNamesFromEnv())
}

func runPurge(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid estimate id %q", args[0])
	}
	ddb, err := database.ConnectDynamoDB(cmd.Context())
	if err != nil {
		return err
	}
	uc := usecase.NewEstimateUseCase(repository.NewEstimateDynamoRepository(ddb), repository.NewCatalogDynamoRepository(ddb))
	if err := uc.Purge(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "purged estimate %d\n", id)
	return nil
}

func runCalcFile(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	return runCalc(cmd.OutOrStdout(), in)
}

// runCalc reads {"sections": [...]} in the same shape the HTTP API accepts
// and prints per-section subtotals followed by the document totals.
func runCalc(w io.Writer, r io.Reader) error {
	var payload request.EstimatePreviewRequest
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return fmt.Errorf("decode sections: %w", err)
	}
	res, err := calculation.Aggregate(request.ToSections(payload.Sections))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER\tTYPE\tTITLE\tSUBTOTAL")
	for _, sec := range res.Sections {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\n", sec.SectionOrder, sec.SectionType, sec.Title, sec.Subtotal)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nsubtotal %.2f\ntax      %.2f\ntotal    %.2f\n", res.Subtotal, res.Tax, res.Total)
	return nil
}

func runIssueSession(cmd *cobra.Command, _ []string) error {
	if sessionUserID <= 0 {
		return fmt.Errorf("--user-id must be positive")
	}
	store, err := openSessionStore()
	if err != nil {
		return err
	}
	defer store.Close()

	token, err := issueSession(cmd.Context(), store, entities.Principal{ID: sessionUserID, Name: sessionName}, sessionTTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func issueSession(ctx context.Context, store interfaces.ISessionStore, p entities.Principal, ttl time.Duration) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	token := fmt.Sprintf("%x", tokenBytes)
	if err := store.Save(ctx, token, p, ttl); err != nil {
		return "", err
	}
	return token, nil
}

func runRevokeSession(cmd *cobra.Command, args []string) error {
	store, err := openSessionStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Revoke(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "session revoked")
	return nil
}

func openSessionStore() (*session.RedisSessionStore, error) {
	return session.NewRedisSessionStore(
		getenvDefault("REDIS_URL", "redis://localhost:6379/0"),
		getenvDefault("SESSION_PREFIX", "session:"),
	)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
