package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/alfredjeanlab/listings/internal/model"
	"github.com/alfredjeanlab/listings/internal/ui"
)

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func printListingTable(w io.Writer, l *model.Listing) {
	fmt.Fprintf(w, "ID:          %s\n", l.ID)
	fmt.Fprintf(w, "Kind:        %s\n", ui.RenderKind(string(l.Kind)))
	fmt.Fprintf(w, "Title:       %s\n", l.Title)
	fmt.Fprintf(w, "Owner:       %s\n", l.UserID)
	fmt.Fprintf(w, "Status:      %s\n", ui.RenderPublished(l.Published))
	if l.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", l.Description)
	}
	if l.Location != "" {
		fmt.Fprintf(w, "Location:    %s\n", l.Location)
	}
	if l.Latitude != nil && l.Longitude != nil {
		fmt.Fprintf(w, "Coordinates: %g, %g\n", *l.Latitude, *l.Longitude)
	}
	if l.WizardStatus != "" {
		fmt.Fprintf(w, "Wizard:      %s\n", l.WizardStatus)
	}
	if l.Membership != "" {
		fmt.Fprintf(w, "Membership:  %s\n", l.Membership)
	}
	if len(l.InterestOptions) > 0 {
		fmt.Fprintf(w, "Interests:   %s\n", strings.Join(l.InterestOptions, ", "))
	}
	if l.PercentFee != nil {
		fmt.Fprintf(w, "Fee:         %g%%\n", *l.PercentFee)
	}

	switch l.Kind {
	case model.KindAdvisor:
		fmt.Fprintf(w, "AUM:         %s\n", money(l.AUM))
		fmt.Fprintf(w, "GDC:         %s\n", money(l.GDC))
		if len(l.ClearingFirmOptions) > 0 {
			fmt.Fprintf(w, "Clearing:    %s\n", strings.Join(l.ClearingFirmOptions, ", "))
		}
		if l.BrokerDealer != "" {
			fmt.Fprintf(w, "B/D:         %s\n", l.BrokerDealer)
		}
		if l.AdvisorID != "" {
			fmt.Fprintf(w, "Advisor ID:  %s\n", l.AdvisorID)
		}
	case model.KindCpa:
		fmt.Fprintf(w, "Revenue:     %s\n", money(l.Revenue))
		if len(l.ServiceOptions) > 0 {
			fmt.Fprintf(w, "Services:    %s\n", strings.Join(l.ServiceOptions, ", "))
		}
		if len(l.CredentialOptions) > 0 {
			fmt.Fprintf(w, "Credentials: %s\n", strings.Join(l.CredentialOptions, ", "))
		}
		if l.CpaID != "" {
			fmt.Fprintf(w, "CPA ID:      %s\n", l.CpaID)
		}
	}

	if l.PublishedAt != nil {
		fmt.Fprintf(w, "Published:   %s\n", l.PublishedAt.Format("2006-01-02 15:04:05"))
	}
	if !l.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Created At:  %s\n", l.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if !l.UpdatedAt.IsZero() {
		fmt.Fprintf(w, "Updated At:  %s\n", l.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
}

func printListingListTable(w io.Writer, listings []*model.Listing) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tSTATUS\tLOCATION\tFEE\tTITLE")
	for _, l := range listings {
		fee := "-"
		if l.PercentFee != nil {
			fee = strconv.FormatFloat(*l.PercentFee, 'g', -1, 64) + "%"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			l.ID,
			l.Kind,
			publishedLabel(l.Published),
			ui.Truncate(l.Location, 24),
			fee,
			ui.Truncate(l.Title, 50),
		)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d listings\n", len(listings))
}

// printExplain writes a rendered statement and its numbered arguments.
func printExplain(w io.Writer, stmt string, args []any) {
	fmt.Fprintln(w, stmt)
	for i, a := range args {
		fmt.Fprintf(w, "  $%d = %v\n", i+1, a)
	}
}

func publishedLabel(published bool) string {
	if published {
		return "published"
	}
	return "draft"
}

// money formats an optional dollar amount.
func money(v *float64) string {
	if v == nil {
		return "-"
	}
	return "$" + strconv.FormatFloat(*v, 'f', 0, 64)
}
