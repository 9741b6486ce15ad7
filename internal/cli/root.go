// Package cli defines the martinize command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rmera/martinize/ff"
	"github.com/rmera/martinize/internal/config"
	"github.com/rmera/martinize/internal/logging"
	"github.com/rmera/martinize/pipeline"
	"github.com/rmera/martinize/top"
)

// Version is set at build time.
var Version = "dev"

// RootOptions holds the flags that are not settings of the conversion itself.
type RootOptions struct {
	ConfigPath string
}

// NewRootCommand returns the martinize command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	cmd := &cobra.Command{
		Use:   "martinize -f structure [flags]",
		Short: "Build Martini coarse grained structures and topologies from atomistic ones",
		Long: "martinize maps proteins and nucleic acids in a PDB or GRO file to the Martini\n" +
			"coarse grained model, and writes the CG structure and the Gromacs topologies.",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.ConfigPath, "config", "", "YAML file with settings. Flags and MARTINIZE_* variables take precedence")
	pf.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.String("log-format", config.DefaultLogFormat, "log format (console, json)")

	f := cmd.Flags()
	f.SortFlags = false
	f.StringP("input", "f", "", "input structure, PDB or GRO, optionally compressed (.gz, .zst)")
	f.StringP("top", "o", "", "output master topology. The itp files are written in the same directory")
	f.StringP("cg", "x", "", "output CG structure, PDB or GRO")
	f.StringP("index", "n", "", "output index file with the AA, VZ and CG groups")
	f.String("nmap", "", "output index file with the atoms of each bead")
	f.String("bmap", "", "prefix for the index files with the bonded terms")
	f.String("plot", "", "prefix for the secondary structure and elastic network figures")

	f.String("ss", "", "secondary structure, as a string or a file (DSSP or Gromacs ssdump)")
	f.String("dssp", "", "DSSP executable to determine the secondary structure")
	f.Float64("ssc", config.DefaultSSCutoff, "fraction of the frames needed for a secondary structure consensus")
	f.Bool("collagen", false, "use collagen parameters")

	f.String("ff", config.DefaultForceField, "force field: "+strings.Join(ff.Names(), ", "))
	f.String("type", "", "DNA/RNA topology type: "+strings.Join(config.Types(), ", "))
	f.Bool("nt", false, "neutral termini")
	f.Bool("cb", false, "charges at chain breaks")
	f.Bool("ed", false, "use dihedrals for extended regions instead of elastic bonds")
	f.StringArray("cys", nil, "cystine bridges: auto, a cutoff in nm, or a pair like A/CYS/12,B/CYS/40 (repeatable)")
	f.StringArray("merge", nil, "chains to merge in one moleculetype, like A,B,C, or all (repeatable)")
	f.StringArray("link", nil, "link between beads, a,b[,length[,fc]] (repeatable)")
	f.StringArray("multi", nil, "chain to be written in multiscale form, or all (repeatable)")
	f.StringArray("his", nil, "histidine to protonate, like A/HIS/23 (repeatable)")

	f.Bool("elastic", false, "write an elastic network")
	f.Float64("ef", config.DefaultEF, "elastic bond force constant")
	f.Float64("el", 0, "elastic bond lower cutoff (nm): full force constant below it")
	f.Float64("eu", config.DefaultEU, "elastic bond upper cutoff (nm): no bonds above it")
	f.Float64("ea", 0, "elastic bond decay factor")
	f.Float64("ep", config.DefaultEP, "elastic bond decay power")
	f.Float64("em", 0, "remove elastic bonds with a force constant not above this")
	f.String("eb", config.DefaultEB, "comma separated bead names for elastic bonds")
	f.Bool("bucket", false, "use a kd-tree to find elastic network pairs")

	f.String("posres", "none", "position restraints: none, all, backbone or a list of bead names")
	f.Float64("pf", top.DefaultPosResFC, "position restraint force constant")
	f.String("name", "", "base name for the moleculetypes")
	f.Bool("sep", false, "write separate topologies for identical chains")
	return cmd
}

// run builds the configuration, then the logger, then the pipeline, and runs it.
func run(cmd *cobra.Command, opts *RootOptions) error {
	v := config.NewViper()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
		return err
	}
	cfg, err := config.Load(v, opts.ConfigPath)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogConfig())
	if err != nil {
		return err
	}
	defer log.Sync()
	log.Info("MARTINIZE", logging.String("version", Version))
	log.Info("If you use this program please cite: de Jong et al., J. Chem. Theory Comput., 2013, DOI:10.1021/ct300646g")
	P, err := pipeline.New(cfg.Options(arguments(cmd)), log)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	R, err := P.Run(ctx)
	if err != nil {
		log.Error("Conversion failed", logging.Err(err))
		return err
	}
	for _, f := range R.Files {
		log.Debug("Written", logging.String("file", f))
	}
	return nil
}

// arguments returns the command line as given, for the topology headers.
func arguments(cmd *cobra.Command) string {
	args := make([]string, 0, 16)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		args = append(args, "--"+f.Name, f.Value.String())
	})
	return strings.Join(args, " ")
}

// Execute runs the martinize command with the arguments of the process.
func Execute() error {
	cmd := NewRootCommand()
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
