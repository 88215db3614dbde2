package utils

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"casefiles/internal/models"
)

var sizeLabels = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatSize renders a byte count in human readable form. The comparison is
// strictly greater-than, so a value sitting exactly on a power-of-1024
// threshold is reported in the lower unit ("1024.00 B", not "1.00 KB").
func FormatSize(bytes int64) string {
	size := float64(bytes)
	n := 0
	for size > 1024 && n < len(sizeLabels)-1 {
		size /= 1024
		n++
	}
	return fmt.Sprintf("%.2f %s", size, sizeLabels[n])
}

func PrintJSON(data interface{}) error {
	jsonOutput, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(jsonOutput))
	return nil
}

func PrintError(err error, command string) {
	errorResp := models.ErrorResponse{
		Error:     err.Error(),
		Timestamp: time.Now().Format(time.RFC3339),
		Command:   command,
	}
	err = PrintJSON(errorResp)
	if err != nil {
		slog.Error("Failed to print error in JSON format", "error", err)
		fmt.Println("Error: ", errorResp)
		return
	}
}

func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
