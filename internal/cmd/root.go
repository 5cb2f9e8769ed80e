package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheerioskun/antglob/fileset"
	"github.com/cheerioskun/antglob/internal/export"
	"github.com/cheerioskun/antglob/internal/models"
	"github.com/cheerioskun/antglob/internal/utils"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time with -ldflags "-X .../internal/cmd.version=..."
var version = "dev"

// options holds the flag values of one command instance
type options struct {
	include       []string
	exclude       []string
	noDefaultExcl bool
	insensitive   bool
	caseSensitive bool
	noSymlinks    bool
	relative      bool
	dirs          bool
	maxDepth      int
	copyTo        string
	overwrite     bool
	configFile    string
	verbosity     int
	usage         bool
	fs            afero.Fs
	v             *viper.Viper
	stdout        io.Writer
	stderr        io.Writer
	color         bool
	setupLogging  bool
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	o := newOptions(afero.NewOsFs(), os.Stdout, os.Stderr)
	o.color = utils.IsTerminal()
	o.setupLogging = true
	defer utils.CloseLogger()

	root := newRootCmd(o)
	root.SetArgs(normalizeArgs(os.Args[1:]))
	if err := root.Execute(); err != nil {
		st := newStyles(o.stderr, o.color)
		fmt.Fprintln(o.stderr, st.renderError(err))
		fmt.Fprintln(o.stderr, "Run 'antglob --help' for usage.")
		return 1
	}
	return 0
}

func newOptions(fs afero.Fs, stdout, stderr io.Writer) *options {
	v := viper.New()
	v.SetFs(fs)
	return &options{
		fs:     fs,
		v:      v,
		stdout: stdout,
		stderr: stderr,
	}
}

func newRootCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "antglob [directory]",
		Short: "Find files with Ant-style globs",
		Long: `Find the files below a directory that match Ant-style globs.

Include patterns select files, exclude patterns remove them again, and
directories that cannot contain a match are never read. Without -i every
file is selected. Run 'antglob --usage' for the glob syntax.

Examples:
  antglob -i "*.py"
  antglob src -i "**/*.go" -e "**/*_test.go" "vendor/"
  antglob -i "/docs/**" --relative
  antglob logs -i "**/*.log" --copy-to ./collected`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !o.setupLogging {
				return nil
			}
			return o.setupLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args)
		},
	}
	cmd.SetOut(o.stdout)
	cmd.SetErr(o.stderr)

	flags := cmd.Flags()
	flags.StringArrayVarP(&o.include, "include", "i", nil, "include globs; several may follow one flag (default \"**\")")
	flags.StringArrayVarP(&o.exclude, "exclude", "e", nil, "exclude globs; several may follow one flag")
	flags.BoolVar(&o.noDefaultExcl, "no-default-excludes", false, "do not apply the default excludes")
	flags.BoolVar(&o.insensitive, "insensitive", false, "match case-insensitively")
	flags.BoolVar(&o.caseSensitive, "case-sensitive", false, "match case-sensitively, also on Windows")
	flags.BoolVar(&o.noSymlinks, "no-symlinks", false, "do not follow or report symbolic links")
	flags.BoolVarP(&o.relative, "relative", "r", false, "print paths relative to the directory")
	flags.BoolVar(&o.dirs, "dirs", false, "also print directories matched by a directory glob")
	flags.IntVar(&o.maxDepth, "max-depth", 0, "maximum directory depth to descend (0 for unlimited)")
	flags.StringVar(&o.copyTo, "copy-to", "", "copy matched files into this directory, keeping their layout")
	flags.BoolVar(&o.overwrite, "overwrite", false, "overwrite existing files with --copy-to")
	flags.StringVar(&o.configFile, "config", "", "config file (default is .antglob.yaml in the working or home directory)")
	flags.CountVarP(&o.verbosity, "verbose", "v", "increase verbosity (-v summary and INFO, -vv DEBUG, -vvv TRACE)")
	flags.BoolVar(&o.usage, "usage", false, "print a guide to Ant globs and exit")
	cmd.MarkFlagsMutuallyExclusive("insensitive", "case-sensitive")

	return cmd
}

func (o *options) setupLogger() error {
	if err := utils.SetupLogger(o.verbosity, os.Getenv("ANTGLOB_LOG_FILE")); err != nil {
		utils.Warning("Logging to stderr only: %v", err)
	}
	return nil
}

func (o *options) run(cmd *cobra.Command, args []string) error {
	if o.usage {
		fmt.Fprint(o.stdout, usageText)
		return nil
	}

	cr, err := o.loadCriteria(cmd, args)
	if err != nil {
		return err
	}
	if o.overwrite && o.copyTo == "" {
		utils.Warning("--overwrite has no effect without --copy-to")
	}

	logger := utils.GetLogger("antglob")
	set, err := fileset.New(
		fileset.FromCriteria(*cr),
		fileset.WithFs(o.fs),
		fileset.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	logger.Debug().Str("fileset", set.String()).Msg("Walking")

	root := set.Root()
	printed := func(yield func(models.Match) bool) {
		for m := range set.Walk() {
			fmt.Fprintln(o.stdout, o.format(m))
			if !yield(m) {
				return
			}
		}
	}

	if o.copyTo != "" {
		svc := export.NewService(o.fs)
		svc.SetLogger(utils.GetLogger("export"))
		summary, err := svc.Export(printed, export.Options{
			Destination: o.copyTo,
			Overwrite:   o.overwrite,
		})
		if err != nil {
			return err
		}
		if o.verbosity > 0 {
			fmt.Fprintf(o.stderr, "copied %d files (%d bytes) to %s\n", summary.FileCount, summary.TotalSize, summary.Destination)
		}
	} else {
		for range printed {
		}
	}

	stats := set.LastStats()
	st := newStyles(o.stderr, o.color)
	if stats.Errors > 0 {
		fmt.Fprintln(o.stderr, st.renderWarning(fmt.Sprintf("%d directories could not be listed", stats.Errors)))
	}
	if o.verbosity > 0 {
		fmt.Fprintln(o.stderr, st.renderSummary(root, stats))
	}
	return nil
}

// format renders a match for stdout
func (o *options) format(m models.Match) string {
	if o.relative {
		return "." + string(filepath.Separator) + filepath.FromSlash(m.Rel)
	}
	return m.Path
}

// loadCriteria merges defaults, the config file, ANTGLOB_* variables and the
// command line, in increasing priority
func (o *options) loadCriteria(cmd *cobra.Command, args []string) (*models.Criteria, error) {
	v := o.v
	defaults := models.NewCriteria()
	v.SetDefault("directory", "")
	v.SetDefault("include", []string{})
	v.SetDefault("exclude", []string{})
	v.SetDefault("case", defaults.Case)
	v.SetDefault("symlinks", defaults.Symlinks)
	v.SetDefault("default_excludes", defaults.DefaultExcludes)
	v.SetDefault("directories", false)
	v.SetDefault("max_depth", 0)

	v.SetEnvPrefix("ANTGLOB")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := o.readConfig(); err != nil {
		return nil, err
	}

	cr := models.NewCriteria()
	if err := v.Unmarshal(cr); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	flags := cmd.Flags()
	if len(args) > 0 {
		cr.Directory = args[0]
	}
	if flags.Changed("include") {
		cr.Include = nil
		cr.AddInclude(o.include...)
	}
	if flags.Changed("exclude") {
		cr.Exclude = nil
		cr.AddExclude(o.exclude...)
	}
	if o.noDefaultExcl {
		cr.DefaultExcludes = false
	}
	if o.insensitive {
		cr.Case = models.CaseInsensitive.String()
	}
	if o.caseSensitive {
		cr.Case = models.CaseSensitive.String()
	}
	if o.noSymlinks {
		cr.Symlinks = false
	}
	if flags.Changed("dirs") {
		cr.Directories = o.dirs
	}
	if flags.Changed("max-depth") {
		cr.MaxDepth = o.maxDepth
	}

	if len(cr.Include) == 0 {
		cr.AddInclude("**")
	}
	if err := cr.Validate(); err != nil {
		return nil, err
	}
	return cr, nil
}

// readConfig loads --config, or .antglob.yaml from the working or home
// directory when present
func (o *options) readConfig() error {
	v := o.v
	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
	} else {
		v.SetConfigName(".antglob")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if o.configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	utils.Debug("Loaded config file %s", v.ConfigFileUsed())
	return nil
}
