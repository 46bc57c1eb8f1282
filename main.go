// Calc is a small expression calculator with loops, conditionals and plots.
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"runtime/debug"

	"fortio.org/cli"
	"fortio.org/log"
	"fortio.org/struct2env"
	"fortio.org/terminal"
	"grol.io/calc/eval"
	"grol.io/calc/repl"
)

func main() {
	os.Exit(Main())
}

type Config struct {
	HistoryFile string
	PlotDir     string
}

var config = Config{}

func EnvHelp(w io.Writer) {
	res, _ := struct2env.StructToEnvVars(config)
	str := struct2env.ToShellWithPrefix("CALC_", res, true)
	fmt.Fprintln(w, "# Calc environment variables:")
	fmt.Fprint(w, str)
}

var hookBefore, hookAfter func() int

func Main() int {
	commandFlag := flag.String("c", "", "command/inline expressions to run instead of interactive mode")
	showParse := flag.Bool("parse", false, "show parse tree")
	format := flag.Bool("format", false, "don't evaluate, just parse and re format the input")
	compact := flag.Bool("compact", false, "When printing expressions, use the most compact form")
	showEval := flag.Bool("eval", true, "show eval results")
	sharedState := flag.Bool("shared-state", false, "All files share same variables (default is new state for each)")
	const historyDefault = "~/.calc_history" // virtual/token filename, will be replaced by actual home dir if not changed.
	cli.EnvHelpFuncs = append(cli.EnvHelpFuncs, EnvHelp)
	defaultHistoryFile := historyDefault
	errs := struct2env.SetFromEnv("CALC_", &config)
	if len(errs) > 0 {
		log.Errf("Error setting config from env: %v", errs)
	}
	if config.HistoryFile != "" {
		defaultHistoryFile = config.HistoryFile
	}
	historyFile := flag.String("history", defaultHistoryFile, "history `file` to use")
	maxHistory := flag.Int("max-history", terminal.DefaultHistoryCapacity, "max history `size`, use 0 to disable.")
	noAuto := flag.Bool("no-auto", false, "don't auto load/save the variables to ./"+repl.AutoSaveFile)
	maxDepth := flag.Int("max-depth", eval.DefaultMaxDepth, "Maximum evaluation depth")
	seed := flag.Uint64("seed", 0, "random `seed` for randomlyPick, 0 for a random one")
	plotDir := flag.String("plot-dir", config.PlotDir, "`directory` where plot() writes its images, plot() fails if empty")
	panicOk := flag.Bool("panic", false, "Don't catch panic - only for development/debugging")

	cli.ArgsHelp = "*.calc files to evaluate or `-` for stdin without prompt or no arguments for stdin repl..."
	cli.MaxArgs = -1
	cli.Main()
	histFile := *historyFile
	if histFile == historyDefault {
		homeDir, err := os.UserHomeDir()
		histFile = filepath.Join(homeDir, ".calc_history")
		if err != nil {
			log.Warnf("Couldn't get user home dir: %v", err)
			histFile = ""
		}
	}
	log.Infof("calc %s - welcome!", cli.LongVersion)
	if debug.SetMemoryLimit(-1) == math.MaxInt64 {
		log.Warnf("Memory limit not set, plot() sizes are only capped by %d points; e.g. set GOMEMLIMIT=1GiB", eval.MaxPlotPoints)
	}
	options := repl.Options{
		ShowParse:   *showParse,
		ShowEval:    *showEval,
		FormatOnly:  *format,
		Compact:     *compact,
		HistoryFile: histFile,
		MaxHistory:  *maxHistory,
		AutoLoad:    !*noAuto,
		AutoSave:    !*noAuto,
		MaxDepth:    *maxDepth,
		Seed:        *seed,
		PlotDir:     *plotDir,
		PanicOk:     *panicOk,
	}
	if hookBefore != nil {
		ret := hookBefore()
		if ret != 0 {
			return ret
		}
	}
	if *commandFlag != "" {
		options.All = true
		res, errs, _ := repl.EvalStringWithOption(options, *commandFlag)
		if len(errs) > 0 {
			log.Errf("Errors: %v", errs)
		}
		fmt.Print(res)
		return len(errs)
	}
	if len(flag.Args()) == 0 {
		return repl.Interactive(options)
	}
	options.All = true
	s := options.NewState()
	for _, file := range flag.Args() {
		ret := processOneFile(file, s, options)
		if ret != 0 {
			return ret
		}
		if !*sharedState {
			s = options.NewState()
		}
	}
	log.Infof("All done")
	if hookAfter != nil {
		return hookAfter()
	}
	return 0
}

func processOneStream(s *eval.State, in io.Reader, options repl.Options) int {
	errs := repl.EvalAll(s, in, os.Stdout, options)
	if len(errs) > 0 {
		log.Errf("Errors: %v", errs)
	}
	return len(errs)
}

func processOneFile(file string, s *eval.State, options repl.Options) int {
	if file == "-" {
		if options.FormatOnly {
			log.Infof("Formatting stdin")
		} else {
			log.Infof("Running on stdin")
		}
		return processOneStream(s, os.Stdin, options)
	}
	f, err := os.Open(file)
	if err != nil {
		return log.FErrf("%v", err)
	}
	defer f.Close()
	verb := "Running"
	if options.FormatOnly {
		verb = "Formatting"
	}
	log.Infof("%s %s", verb, file)
	return processOneStream(s, f, options)
}
