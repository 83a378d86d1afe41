// Package cli implements the stortrooper command line tool: listing
// character types and rendering, randomizing and converting projects
// without the editor window.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/retromoe/stortrooper-editor/internal/catalog"
	"github.com/retromoe/stortrooper-editor/internal/character"
	"github.com/retromoe/stortrooper-editor/internal/compose"
	"github.com/retromoe/stortrooper-editor/internal/config"
	"github.com/retromoe/stortrooper-editor/internal/export"
	"github.com/retromoe/stortrooper-editor/internal/history"
	"github.com/retromoe/stortrooper-editor/internal/model"
	"github.com/retromoe/stortrooper-editor/internal/platform"
	"github.com/retromoe/stortrooper-editor/internal/project"
	"github.com/retromoe/stortrooper-editor/internal/random"
)

// Commands
const (
	CommandList    = "list"
	CommandRender  = "render"
	CommandRandom  = "random"
	CommandConvert = "convert"
	CommandRecent  = "recent"
)

// ErrNoHistory is returned by the recent command when no history database is configured
var ErrNoHistory = errors.New("history database is not configured")

// Config holds the global options and the command to run.
type Config struct {
	config.Env
	Command string
	Args    []string
}

// ParseConfig loads defaults from env and then parses flags. The first
// positional argument is the command; the rest are its arguments.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg.Env); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.ResourceDir, "res", cfg.ResourceDir, "resource directory with one folder per character type")
	fs.StringVar(&cfg.HistoryDB, "history-db", cfg.HistoryDB, "SQLite database with recently used projects")
	fs.IntVar(&cfg.MaxRecent, "max-recent", cfg.MaxRecent, "number of recent projects to keep")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.MaxRecent = min(max(cfg.MaxRecent, config.MinMaxRecent), config.MaxMaxRecent)

	rest := fs.Args()
	if len(rest) == 0 {
		return Config{}, fmt.Errorf("command is required (%s)", strings.Join(commands(), ", "))
	}
	cfg.Command = rest[0]
	cfg.Args = rest[1:]
	return cfg, nil
}

func commands() []string {
	return []string{CommandList, CommandRender, CommandRandom, CommandConvert, CommandRecent}
}

// runner carries the services shared by all commands
type runner struct {
	out      io.Writer
	lib      *catalog.Library
	store    *project.Store
	renderer *compose.Renderer
	recents  history.Recents
}

// Run executes the configured command, writing its report to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}

	resourceDir, err := platform.FindResourceDir(cfg.ResourceDir)
	if err != nil {
		return err
	}

	r := &runner{
		out:      out,
		lib:      catalog.NewLibrary(resourceDir),
		renderer: compose.NewRenderer(),
	}
	if cfg.HistoryDB != "" {
		db, err := history.OpenSQLite(cfg.HistoryDB, cfg.MaxRecent)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Printf("close history: %v", err)
			}
		}()
		r.recents = db
	}
	r.store = project.NewStore(r.lib, r.recents)

	switch cfg.Command {
	case CommandList:
		return r.list(ctx)
	case CommandRender:
		return r.render(cfg.Args)
	case CommandRandom:
		return r.random(cfg.Args)
	case CommandConvert:
		return r.convert(cfg.Args)
	case CommandRecent:
		return r.recent()
	default:
		return fmt.Errorf("unknown command %q (%s)", cfg.Command, strings.Join(commands(), ", "))
	}
}

// list prints every character type with its articles files
func (r *runner) list(ctx context.Context) error {
	names, err := r.lib.CharacterTypes()
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		files, err := r.lib.ArticleFiles(name)
		if err != nil {
			fmt.Fprintf(r.out, "%s: %v\n", name, err)
			continue
		}
		for _, file := range files {
			ct := model.CharacterType{Name: name, ArticlesFile: file}
			c, err := r.lib.Load(ct)
			if err != nil {
				fmt.Fprintf(r.out, "%s: %v\n", ct, err)
				continue
			}
			size := c.Canvas()
			fmt.Fprintf(r.out, "%s: %d categories, %d articles, %dx%d\n",
				ct, len(c.Categories()), c.AssetCount(), size.X, size.Y)
		}
	}
	return nil
}

// render writes the PNG of a project file or of an explicit selection
func (r *runner) render(args []string) error {
	fs := flag.NewFlagSet(CommandRender, flag.ContinueOnError)
	fs.SetOutput(r.out)
	projectPath := fs.String("project", "", "project file to render")
	name := fs.String("character", "", "character type")
	articles := fs.String("articles", "", "articles file (default: the character's default)")
	selection := fs.String("select", "", "comma separated category=article pairs applied over the defaults")
	output := fs.String("o", "", "output PNG path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *output == "" {
		return errors.New("-o is required")
	}

	var state *character.State
	if *projectPath != "" {
		p, err := r.loadProject(*projectPath)
		if err != nil {
			return err
		}
		c, err := r.lib.Load(p.Type)
		if err != nil {
			return err
		}
		state = character.New(c)
		if err := state.Replace(p.Selection); err != nil {
			return err
		}
	} else {
		c, err := r.catalog(*name, *articles)
		if err != nil {
			return err
		}
		state = character.NewWithDefaults(c)
		pairs, err := parseSelection(*selection)
		if err != nil {
			return err
		}
		for _, pair := range pairs {
			if err := state.Select(pair[0], pair[1]); err != nil {
				return err
			}
		}
	}

	if err := export.PNG(r.renderer, state.Catalog(), state.CurrentSelection(), *output); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "wrote %s\n", *output)
	return nil
}

// random draws an outfit, reports the seed and optionally exports and saves it
func (r *runner) random(args []string) error {
	fs := flag.NewFlagSet(CommandRandom, flag.ContinueOnError)
	fs.SetOutput(r.out)
	name := fs.String("character", "", "character type (default: random)")
	articles := fs.String("articles", "", "articles file (default: the character's default)")
	seedText := fs.String("seed", "", "seed to replay a previous draw")
	output := fs.String("o", "", "output PNG path")
	save := fs.String("save", "", "project file to save the outfit to")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var gen *random.Generator
	var seed uint64
	if *seedText != "" {
		parsed, err := strconv.ParseUint(*seedText, 10, 64)
		if err != nil {
			return fmt.Errorf("seed %q: %w", *seedText, err)
		}
		seed = parsed
		gen = random.New(seed)
	} else {
		var err error
		if gen, seed, err = random.NewFromEntropy(); err != nil {
			return err
		}
	}

	if *name == "" {
		names, err := r.lib.CharacterTypes()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			return fmt.Errorf("no character types in %s", r.lib.Root())
		}
		*name = names[gen.Intn(len(names))]
	}
	c, err := r.catalog(*name, *articles)
	if err != nil {
		return err
	}
	state, err := gen.Randomize(c)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "seed: %d\n", seed)
	sel := state.CurrentSelection()
	for _, cat := range c.Categories() {
		asset, _ := sel.Get(cat.ID)
		if asset == "" {
			asset = "-"
		}
		fmt.Fprintf(r.out, "  %s: %s\n", cat.ID, asset)
	}

	if *output != "" {
		if err := export.PNG(r.renderer, c, sel, *output); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "wrote %s\n", *output)
	}
	if *save != "" {
		p := &model.Project{Type: c.Type(), Selection: sel}
		if err := r.store.Save(p, *save); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "saved %s\n", p.Path)
	}
	return nil
}

// convert rewrites a project file, legacy or current, in the current format
func (r *runner) convert(args []string) error {
	fs := flag.NewFlagSet(CommandConvert, flag.ContinueOnError)
	fs.SetOutput(r.out)
	output := fs.String("o", "", "output project path (default: overwrite the input)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("convert takes exactly one project file")
	}

	p, err := r.loadProject(fs.Arg(0))
	if err != nil {
		return err
	}
	target := *output
	if target == "" {
		target = p.Path
	}
	if err := r.store.Save(p, target); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "converted %s to %s\n", fs.Arg(0), p.Path)
	return nil
}

// recent prints the recently used project files, newest first
func (r *runner) recent() error {
	if r.recents == nil {
		return ErrNoHistory
	}
	for _, path := range r.store.RecentFiles() {
		fmt.Fprintln(r.out, path)
	}
	return nil
}

// loadProject loads a project, reporting dropped references as warnings
func (r *runner) loadProject(path string) (*model.Project, error) {
	p, err := r.store.Load(path)
	var dangling *project.DanglingError
	if errors.As(err, &dangling) {
		for _, ref := range dangling.Refs {
			fmt.Fprintf(r.out, "warning: %s: dropped %s\n", path, ref)
		}
		return p, nil
	}
	return p, err
}

// catalog loads a character type, using its default articles file when none is given
func (r *runner) catalog(name, articles string) (*catalog.Catalog, error) {
	if name == "" {
		return nil, errors.New("-character is required")
	}
	ct := model.CharacterType{Name: name, ArticlesFile: articles}
	if articles == "" {
		var err error
		if ct, err = r.lib.DefaultType(name); err != nil {
			return nil, err
		}
	}
	return r.lib.Load(ct)
}

// parseSelection splits "hair=H1,body=B1" into pairs
func parseSelection(text string) ([][2]string, error) {
	var pairs [][2]string
	for _, item := range strings.Split(text, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		category, asset, ok := strings.Cut(item, "=")
		if !ok || category == "" || asset == "" {
			return nil, fmt.Errorf("selection %q is not category=article", item)
		}
		pairs = append(pairs, [2]string{category, asset})
	}
	return pairs, nil
}
