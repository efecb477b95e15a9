package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tendant/simple-catalog/pkg/catalog"
)

// NewListCommand creates the list command
func NewListCommand(open storeFactory) *cobra.Command {
	var (
		channel string
		typ     string
		path    string
		search  string
		limit   int
		offset  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List content projects, newest first",
		Example: `  catalogctl list --channel youtube --type shorts
  catalogctl list --path /site/manchete -q "loja x"
  catalogctl list --limit 10 --offset 20 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := catalog.Filter{
				Channel:    catalog.Channel(channel),
				Type:       catalog.ContentType(typ),
				SearchText: search,
				Limit:      limit,
				Offset:     offset,
			}
			if path != "" {
				c, t, ok := catalog.ParsePath(path)
				if !ok {
					return fmt.Errorf("unknown view path: %s", path)
				}
				filter.Channel, filter.Type = c, t
			}
			if limit < 0 || offset < 0 {
				return fmt.Errorf("limit and offset must not be negative")
			}

			store, cleanup, err := open(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			projects, err := store.Query(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("list failed: %w", err)
			}

			if asJSON(cmd) {
				return writeJSON(cmd.OutOrStdout(), projects)
			}
			printProjectTable(cmd.OutOrStdout(), projects)
			return nil
		},
	}

	cmd.Flags().StringVar(&channel, "channel", "", "filter by channel")
	cmd.Flags().StringVar(&typ, "type", "", "filter by content type")
	cmd.Flags().StringVar(&path, "path", "", "filter by view path, e.g. /youtube/shorts")
	cmd.Flags().StringVarP(&search, "search", "q", "", "case-insensitive text search")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results (0 for all)")
	cmd.Flags().IntVar(&offset, "offset", 0, "pagination offset")

	return cmd
}

// NewGetCommand creates the get command
func NewGetCommand(open storeFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one content project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := open(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			project, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get failed: %w", err)
			}
			return printProject(cmd, project)
		},
	}
}

// NewCreateCommand creates the create command
func NewCreateCommand(open storeFactory) *cobra.Command {
	var draft catalog.ProjectDraft

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new content project",
		Example: `  catalogctl create --name "Loja X" --channel youtube --type shorts \
    --link https://youtu.be/abc --views 1500 --published 2024-03-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(draft.Type) == "" {
				channel := catalog.Channel(strings.ToLower(strings.TrimSpace(draft.Channel)))
				if def, ok := catalog.DefaultType(channel); ok {
					draft.Type = string(def)
				}
			}

			store, cleanup, err := open(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			project, err := store.Create(cmd.Context(), draft)
			if err != nil {
				return fmt.Errorf("create failed: %w", err)
			}
			return printProject(cmd, project)
		},
	}

	bindDraftFlags(cmd, &draft)
	return cmd
}

// NewUpdateCommand creates the update command. Only the given flags change;
// switching channel without --type resets the type to the channel default
// when the current one does not belong to it.
func NewUpdateCommand(open storeFactory) *cobra.Command {
	var changes catalog.ProjectDraft

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit an existing content project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := open(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			existing, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("update failed: %w", err)
			}

			draft := mergeDraft(cmd, existing.Draft(), changes)
			project, err := store.Update(cmd.Context(), args[0], draft)
			if err != nil {
				return fmt.Errorf("update failed: %w", err)
			}
			return printProject(cmd, project)
		},
	}

	bindDraftFlags(cmd, &changes)
	return cmd
}

// NewDeleteCommand creates the delete command
func NewDeleteCommand(open storeFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a content project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := open(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := store.Remove(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

// NewChannelsCommand prints the channel/type taxonomy
func NewChannelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "channels",
		Short: "List channels and their content types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			channels := catalog.Channels()
			if asJSON(cmd) {
				return writeJSON(cmd.OutOrStdout(), channels)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "CHANNEL\tTYPE\tLABEL\tPATH\n")
			for _, c := range channels {
				for _, t := range c.Types {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Label, t.Key, t.Label, catalog.BuildPath(c.Key, t.Key))
				}
			}
			return w.Flush()
		},
	}
}

func bindDraftFlags(cmd *cobra.Command, d *catalog.ProjectDraft) {
	cmd.Flags().StringVar(&d.Name, "name", "", "project name")
	cmd.Flags().StringVar(&d.Channel, "channel", "", "channel key (see: catalogctl channels)")
	cmd.Flags().StringVar(&d.Type, "type", "", "content type key (default: first type of the channel)")
	cmd.Flags().StringVar(&d.ViewCount, "views", "", "view count")
	cmd.Flags().StringVar(&d.Segment, "segment", "", "market segment")
	cmd.Flags().StringVar(&d.PublishedDate, "published", "", "publication date, YYYY-MM-DD")
	cmd.Flags().StringVar(&d.Client, "client", "", "client name")
	cmd.Flags().StringVar(&d.Link, "link", "", "link to the content")
	cmd.Flags().StringVar(&d.Description, "description", "", "free-form description")
}

func mergeDraft(cmd *cobra.Command, base, changes catalog.ProjectDraft) catalog.ProjectDraft {
	set := func(flag string, dst *string, v string) {
		if cmd.Flags().Changed(flag) {
			*dst = v
		}
	}
	set("name", &base.Name, changes.Name)
	set("channel", &base.Channel, changes.Channel)
	set("type", &base.Type, changes.Type)
	set("views", &base.ViewCount, changes.ViewCount)
	set("segment", &base.Segment, changes.Segment)
	set("published", &base.PublishedDate, changes.PublishedDate)
	set("client", &base.Client, changes.Client)
	set("link", &base.Link, changes.Link)
	set("description", &base.Description, changes.Description)

	if cmd.Flags().Changed("channel") && !cmd.Flags().Changed("type") {
		channel := catalog.Channel(strings.ToLower(strings.TrimSpace(base.Channel)))
		base.Type = string(catalog.ResetType(channel, catalog.ContentType(base.Type)))
	}
	return base
}

func asJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printProject(cmd *cobra.Command, p *catalog.ContentProject) error {
	if asJSON(cmd) {
		return writeJSON(cmd.OutOrStdout(), p)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", p.ID)
	fmt.Fprintf(w, "Name:\t%s\n", p.Name)
	fmt.Fprintf(w, "Channel:\t%s\n", catalog.ChannelLabel(p.Channel))
	fmt.Fprintf(w, "Type:\t%s\n", catalog.TypeLabel(p.Channel, p.Type))
	fmt.Fprintf(w, "Views:\t%s\n", views(p.ViewCount))
	fmt.Fprintf(w, "Segment:\t%s\n", orDash(p.Segment))
	fmt.Fprintf(w, "Published:\t%s\n", orDash(p.PublishedDate))
	fmt.Fprintf(w, "Client:\t%s\n", orDash(p.Client))
	fmt.Fprintf(w, "Link:\t%s\n", p.Link)
	fmt.Fprintf(w, "Description:\t%s\n", orDash(p.Description))
	fmt.Fprintf(w, "Created:\t%s\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
	if p.UpdatedAt != nil {
		fmt.Fprintf(w, "Updated:\t%s\n", p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func printProjectTable(out io.Writer, projects []catalog.ContentProject) {
	if len(projects) == 0 {
		fmt.Fprintln(out, "No content projects found.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tNAME\tCHANNEL\tTYPE\tVIEWS\tPUBLISHED\tCREATED\n")
	for _, p := range projects {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID,
			p.Name,
			catalog.ChannelLabel(p.Channel),
			catalog.TypeLabel(p.Channel, p.Type),
			views(p.ViewCount),
			orDash(p.PublishedDate),
			p.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	w.Flush()
}

func views(n *int64) string {
	if n == nil {
		return "-"
	}
	return strconv.FormatInt(*n, 10)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
