package main

import (
	"fmt"

	"donorlink/internal/quotation"
	"donorlink/internal/session"

	"github.com/spf13/cobra"
)

var (
	requestIDFlag   uint
	quotationIDFlag uint
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Show the patient's donation requests",
	Args:  cobra.NoArgs,
	RunE:  runRequests,
}

func runRequests(cmd *cobra.Command, args []string) error {
	a.sessions.CheckAuth("/patient/requests")
	if !a.sessions.Snapshot().Authenticated {
		return fmt.Errorf("not logged in")
	}

	reqs, err := a.requests.ListByPatient(cmd.Context())
	if err != nil {
		return err
	}

	for _, r := range reqs {
		fmt.Printf("#%d  %-30s  %-18s  default %.2f  remaining %.2f\n",
			r.RequestID, r.Title, r.Status, r.DefaultPrice, r.RemainingPrice)
	}
	return nil
}

var quotationsCmd = &cobra.Command{
	Use:   "quotations",
	Short: "Inspect and accept quotations on a donation request",
}

var quotationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List open quotations for a request",
	Args:  cobra.NoArgs,
	RunE:  runQuotationsList,
}

func runQuotationsList(cmd *cobra.Command, args []string) error {
	a.sessions.CheckAuth("/patient/requests")
	if !a.sessions.Snapshot().Authenticated {
		return fmt.Errorf("not logged in")
	}

	quotes, err := a.workflow.LoadRequest(cmd.Context(), requestIDFlag)
	if err != nil {
		return err
	}

	for _, q := range quotes {
		name := fmt.Sprintf("importer #%d", q.DrugImporterID)
		if imp, err := a.importers.Get(cmd.Context(), q.DrugImporterID); err == nil {
			name = imp.Name
		}
		fmt.Printf("quotation #%d  %-24s  total %.2f  discount %.0f%%  %s\n",
			q.ID, name, quotation.TotalPrice(q), q.Discount*100, q.Status)
	}
	return nil
}

var quotationsSelectCmd = &cobra.Command{
	Use:   "select",
	Short: "Accept one quotation and reject its competitors",
	Args:  cobra.NoArgs,
	RunE:  runQuotationsSelect,
}

func runQuotationsSelect(cmd *cobra.Command, args []string) error {
	a.sessions.CheckAuth("/patient/requests")
	if !a.sessions.HasRole(session.RolePatient) {
		return fmt.Errorf("only patients can accept quotations")
	}

	if _, err := a.workflow.LoadRequest(cmd.Context(), requestIDFlag); err != nil {
		return err
	}
	return a.workflow.SelectQuotation(cmd.Context(), requestIDFlag, quotationIDFlag)
}

func init() {
	quotationsCmd.PersistentFlags().UintVar(&requestIDFlag, "request", 0, "donation request id")
	_ = quotationsCmd.MarkPersistentFlagRequired("request")

	quotationsSelectCmd.Flags().UintVar(&quotationIDFlag, "quotation", 0, "quotation id to accept")
	_ = quotationsSelectCmd.MarkFlagRequired("quotation")

	quotationsCmd.AddCommand(quotationsListCmd)
	quotationsCmd.AddCommand(quotationsSelectCmd)
}
