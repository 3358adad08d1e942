package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aristath/quartermaster/internal/domain"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// serverURL reads the --server persistent flag.
func serverURL(cmd *cobra.Command) string {
	server, _ := cmd.Flags().GetString("server")
	return strings.TrimRight(server, "/")
}

// postJSON sends a JSON request and returns the raw response body.
// Non-2xx responses are returned as errors carrying the body, which for
// this API is a structured error document worth showing the user.
func postJSON(url string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("server returned %s: %s", resp.Status, strings.TrimSpace(string(data)))
	}
	return data, nil
}

func getJSON(url string) ([]byte, error) {
	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("server returned %s: %s", resp.Status, strings.TrimSpace(string(data)))
	}
	return data, nil
}

// printJSON re-indents a response body for the terminal.
func printJSON(data []byte) {
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		fmt.Println(string(data))
		return
	}
	fmt.Println(out.String())
}

// parsePilot builds a pilot profile from the shared pilot flags.
// Skills are given as repeated "Name=level" pairs.
func parsePilot(cmd *cobra.Command) (*domain.PilotProfile, error) {
	clone, _ := cmd.Flags().GetString("clone")
	skillPairs, _ := cmd.Flags().GetStringArray("skill")

	status := domain.CloneStatus(clone)
	if status != domain.CloneRestricted && status != domain.CloneUnrestricted {
		return nil, fmt.Errorf("unknown clone status %q (restricted or unrestricted)", clone)
	}

	skills := make(map[string]int, len(skillPairs))
	for _, pair := range skillPairs {
		name, levelStr, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid skill %q, expected Name=level", pair)
		}
		level, err := strconv.Atoi(levelStr)
		if err != nil || level < 0 || level > 5 {
			return nil, fmt.Errorf("invalid skill level in %q, expected 0-5", pair)
		}
		skills[strings.TrimSpace(name)] = level
	}

	return &domain.PilotProfile{
		CloneStatus: status,
		Skills:      skills,
	}, nil
}

// addPilotFlags registers the pilot profile flags shared by select and
// check.
func addPilotFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("clone", "c", "unrestricted", "Clone status (restricted or unrestricted)")
	cmd.Flags().StringArrayP("skill", "k", nil, "Trained skill as Name=level, repeatable")
}
