package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"vibeandbuild/internal/content"
)

func newProjectsCommand(ctx *commandContext) *cobra.Command {
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "Inspect the weekly project collection",
	}

	projectsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			stores, err := ctx.openStores()
			if err != nil {
				return err
			}
			projects, err := stores.Projects.Load(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects recorded.")
				return nil
			}

			rows := make([][]string, 0, len(projects))
			for _, project := range projects {
				rows = append(rows, []string{
					project.ID,
					strconv.Itoa(project.Week),
					strconv.Itoa(project.Year),
					project.Title,
					strings.Join(project.Tags, ", "),
					strconv.Itoa(len(project.Thumbnails)),
				})
			}
			headers := []string{"ID", "Week", "Year", "Title", "Tags", "Thumbs"}
			aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignLeft, alignLeft, alignRight}
			fmt.Fprintln(out, renderRows(out, headers, rows, aligns))
			return nil
		},
	})
	projectsCmd.AddCommand(newProjectsAddCommand(ctx))

	return projectsCmd
}

// newProjectsAddCommand mirrors the admin panel's add action: the next
// sequential id comes from scanning existing numeric suffixes.
func newProjectsAddCommand(ctx *commandContext) *cobra.Command {
	var (
		title       string
		description string
		link        string
		tags        []string
		week        int
		year        int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a project with the next sequential id",
		RunE: func(cmd *cobra.Command, args []string) error {
			stores, err := ctx.openStores()
			if err != nil {
				return err
			}
			// Stored, not Load: saving a scan-merged collection would
			// persist thumbnails that belong to the filesystem only.
			projects, err := stores.Projects.Stored(cmd.Context())
			if err != nil {
				return err
			}

			project := content.Project{
				ID:          content.NextProjectID(projects),
				Title:       title,
				Description: description,
				Tags:        content.NormalizeTags(tags),
				Thumbnails:  []string{},
				Link:        link,
				Week:        week,
				Year:        year,
			}
			if err := stores.Projects.Save(cmd.Context(), append(projects, project)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", project.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Project title")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	cmd.Flags().StringVar(&link, "link", "", "Project link URL")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().IntVar(&week, "week", 0, "Week number (1-52)")
	cmd.Flags().IntVar(&year, "year", 0, "Year")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newExperimentsCommand(ctx *commandContext) *cobra.Command {
	experimentsCmd := &cobra.Command{
		Use:   "experiments",
		Short: "Inspect the experiment gallery",
	}

	experimentsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List experiments",
		RunE: func(cmd *cobra.Command, args []string) error {
			stores, err := ctx.openStores()
			if err != nil {
				return err
			}
			experiments, err := stores.Experiments.Load(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(experiments) == 0 {
				fmt.Fprintln(out, "No experiments recorded.")
				return nil
			}

			rows := make([][]string, 0, len(experiments))
			for _, exp := range experiments {
				video := "-"
				if exp.Video != "" {
					video = exp.Video
				}
				rows = append(rows, []string{
					exp.ID,
					exp.Title,
					strconv.Itoa(exp.Tokens),
					strconv.Itoa(len(exp.Images)),
					video,
				})
			}
			headers := []string{"ID", "Title", "Tokens", "Images", "Video"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft}
			fmt.Fprintln(out, renderRows(out, headers, rows, aligns))
			return nil
		},
	})
	experimentsCmd.AddCommand(newExperimentsAddCommand(ctx))

	return experimentsCmd
}

func newExperimentsAddCommand(ctx *commandContext) *cobra.Command {
	var (
		title  string
		text   string
		link   string
		tags   []string
		tokens int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an experiment with the next sequential id",
		RunE: func(cmd *cobra.Command, args []string) error {
			stores, err := ctx.openStores()
			if err != nil {
				return err
			}
			experiments, err := stores.Experiments.Load(cmd.Context())
			if err != nil {
				return err
			}

			experiment := content.Experiment{
				ID:     content.NextExperimentID(experiments),
				Title:  title,
				Tags:   content.NormalizeTags(tags),
				Tokens: tokens,
				Link:   link,
				Text:   text,
				Images: []int{},
			}
			if err := stores.Experiments.Save(cmd.Context(), append(experiments, experiment)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", experiment.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Experiment title")
	cmd.Flags().StringVar(&text, "text", "", "Gallery text")
	cmd.Flags().StringVar(&link, "link", "", "Experiment link URL")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().IntVar(&tokens, "tokens", 0, "Token count")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newIdeasCommand(ctx *commandContext) *cobra.Command {
	ideasCmd := &cobra.Command{
		Use:   "ideas",
		Short: "Inspect the work-in-progress idea list",
	}

	ideasCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List work-in-progress ideas",
		RunE: func(cmd *cobra.Command, args []string) error {
			stores, err := ctx.openStores()
			if err != nil {
				return err
			}
			ideas, err := stores.Ideas.Load(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(ideas) == 0 {
				fmt.Fprintln(out, "No ideas recorded.")
				return nil
			}
			for i, idea := range ideas {
				fmt.Fprintf(out, "%2d. %s\n", i+1, idea)
			}
			return nil
		},
	})

	return ideasCmd
}
