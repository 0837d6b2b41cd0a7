package main

import (
	"fmt"
	"io"
	"net/http"

	"skyfare/internal/domain/entity"
	domainerrors "skyfare/internal/domain/errors"
	"skyfare/templates"

	"github.com/pkg/errors"
)

func printRecord(w io.Writer, key string, record entity.FlightRecord, marks string) {
	fmt.Fprintf(w, "%-2s %s\n   key: %s\n", marks, templates.FormatFlightLine(record), key)
	if verboseFlag {
		if fields, err := entity.DecodeKey(key); err == nil {
			fmt.Fprintf(w, "   fields: %s\n", fields)
		}
	}
}

func printAlert(w io.Writer, alert entity.Alert) {
	state := "paused"
	if alert.Active {
		state = "active"
	}
	fmt.Fprintf(w, "%s [%s] %s\n   last checked: %s  adults: %d\n",
		alert.ID, state, templates.FormatFlightLine(alert.Flight),
		templates.FormatPrice(alert.Flight.Currency, alert.LastCheckedPrice), alert.Adults)
}

// describeError turns domain errors into messages for the terminal
func describeError(err error) string {
	switch {
	case domainerrors.IsAuthError(err):
		return "session expired or missing, run `skyfare login` (" + err.Error() + ")"
	case errors.Is(err, domainerrors.ErrAlertExists):
		return "this flight is already watched"
	case domainerrors.IsMalformed(err):
		return "the server sent an unexpected response: " + err.Error()
	}
	switch domainerrors.StatusCode(err) {
	case http.StatusNotFound:
		return "not found on the server, it may have been deleted elsewhere (" + err.Error() + ")"
	case http.StatusConflict:
		return "the server already has this, refresh with `skyfare alerts list` (" + err.Error() + ")"
	}
	return err.Error()
}
