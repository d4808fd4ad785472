package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/PolarWolf314/projfold/internal/configs"
	"github.com/PolarWolf314/projfold/internal/lifecycle"
	"github.com/PolarWolf314/projfold/internal/ui"
	"github.com/PolarWolf314/projfold/internal/utils"
	"github.com/briandowns/spinner"
)

var (
	// promptInput is where confirmation answers are read from.
	promptInput io.Reader = os.Stdin

	// canPrompt reports whether a confirmation can be asked for.
	canPrompt = utils.IsTerminal
)

// SetPromptInput replaces the confirmation input for testing.
// Prompts are asked even though the test has no terminal.
func SetPromptInput(r io.Reader) {
	promptInput = r
	canPrompt = func() bool { return true }
}

func resetPromptInput() {
	promptInput = os.Stdin
	canPrompt = utils.IsTerminal
}

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if !verbose && !debug {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// confirm asks a yes/no question. Anything but "y" or "yes" is a no.
func confirm(question string) (bool, error) {
	reader := bufio.NewReader(promptInput)
	fmt.Printf("%s [y/N]: ", question)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, Logger.ErrorfAndReturn("Failed to read response: %v", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// rootValue is a pflag.Value holding a lifecycle root. It accepts directory
// names ("01 RFPs") and aliases ("rfps").
type rootValue struct {
	root lifecycle.RootID
}

func (v *rootValue) String() string {
	if !v.root.Valid() {
		return ""
	}
	return v.root.DirName()
}

func (v *rootValue) Set(s string) error {
	root, err := lifecycle.ParseRoot(s)
	if err != nil {
		return err
	}
	v.root = root
	return nil
}

func (v *rootValue) Type() string {
	return "root"
}

// statusValue is a pflag.Value holding a project status.
type statusValue struct {
	status lifecycle.Status
}

func (v *statusValue) String() string {
	return string(v.status)
}

func (v *statusValue) Set(s string) error {
	status, err := lifecycle.ParseStatus(s)
	if err != nil {
		return err
	}
	v.status = status
	return nil
}

func (v *statusValue) Type() string {
	return "status"
}

// templateSetValue is a pflag.Value naming a template set. Names are checked
// against the config when the command runs.
type templateSetValue struct {
	name string
}

func (v *templateSetValue) String() string {
	if v.name == "" {
		return configs.DefaultTemplateSet
	}
	return v.name
}

func (v *templateSetValue) Set(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("template set name cannot be empty")
	}
	v.name = s
	return nil
}

func (v *templateSetValue) Type() string {
	return "set"
}

// parseRootArg parses a positional root argument.
func parseRootArg(arg string) (lifecycle.RootID, error) {
	var v rootValue
	if err := v.Set(arg); err != nil {
		return 0, err
	}
	return v.root, nil
}

// parseStatusArg parses a positional status argument.
func parseStatusArg(arg string) (lifecycle.Status, error) {
	var v statusValue
	if err := v.Set(arg); err != nil {
		return "", err
	}
	return v.status, nil
}

// rootNames lists the accepted root spellings for help text.
func rootNames() string {
	names := make([]string, 0, len(lifecycle.Roots))
	for _, r := range lifecycle.Roots {
		names = append(names, fmt.Sprintf("%q", r.DirName()))
	}
	return strings.Join(names, ", ")
}

// statusNames lists the accepted statuses for help text.
func statusNames() string {
	names := make([]string, 0, len(lifecycle.AllStatuses))
	for _, s := range lifecycle.AllStatuses {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// projectIDArg accepts a bare project ID or a stored reference such as
// "projects:25_97105".
func projectIDArg(arg string) string {
	return lifecycle.NormalizeProjectRef(arg)
}
