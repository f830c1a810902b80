// Package batch scores a directory of users concurrently. Each
// sub-directory of the input directory holds the tables of one user and is
// processed as an isolated run.
package batch

import (
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/finhealth/internal/fileutils"
)

// Input file names looked up in every user directory, in order of preference
var (
	TransactionFiles = []string{"transactions.csv", "transactions.xml"}
	AccountFiles     = []string{"accounts.csv", "accounts.yaml", "accounts.yml"}
	ProfileFiles     = []string{"profile.yaml", "profile.yml"}
)

// TrendsSuffix is appended to the user name for the trends report.
const TrendsSuffix = "-trends"

// Job is the input of one user run. Accounts and Profile may be empty.
// Conflict is set when the user's report name would overwrite another output
// of the run.
type Job struct {
	User         string
	Dir          string
	Transactions string
	Accounts     string
	Profile      string
	Conflict     string
}

// Ready reports whether the job has a transactions table to score.
func (j Job) Ready() bool {
	return j.Transactions != ""
}

// DiscoverJobs returns one job per non-hidden sub-directory of inputDir,
// sorted by user name.
func DiscoverJobs(inputDir string) ([]Job, error) {
	if !fileutils.DirectoryExists(inputDir) {
		return nil, fmt.Errorf("input directory does not exist: %s", inputDir)
	}

	users, err := fileutils.ListSubdirectories(inputDir)
	if err != nil {
		return nil, err
	}

	names := make(map[string]bool, len(users))
	for _, user := range users {
		names[strings.ToLower(user)] = true
	}

	jobs := make([]Job, 0, len(users))
	for _, user := range users {
		dir := filepath.Join(inputDir, user)
		jobs = append(jobs, Job{
			User:         user,
			Dir:          dir,
			Transactions: fileutils.FirstExisting(dir, TransactionFiles...),
			Accounts:     fileutils.FirstExisting(dir, AccountFiles...),
			Profile:      fileutils.FirstExisting(dir, ProfileFiles...),
			Conflict:     outputConflict(user, names),
		})
	}
	return jobs, nil
}

// outputConflict names the output a user's report would collide with. Names
// are compared case-insensitively.
func outputConflict(user string, names map[string]bool) string {
	lower := strings.ToLower(user)
	if lower == SummaryName {
		return "the run summary"
	}
	if owner, ok := strings.CutSuffix(lower, TrendsSuffix); ok && names[owner] {
		return fmt.Sprintf("the trends report of %q", owner)
	}
	return ""
}
