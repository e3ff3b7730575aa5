package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/xenking/backoffice/internal/client"
	"github.com/xenking/backoffice/internal/detail"
	"github.com/xenking/backoffice/internal/draft"
	"github.com/xenking/backoffice/internal/entity"
)

type repository[T any] interface {
	entity.Repository[T]
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, v T) (T, error)
}

// resource describes the commands of one collection. F is the create form,
// which may differ from the record type.
type resource[T, F any] struct {
	name    string
	columns []string
	row     func(T) []string
	key     func(*T) string
	repo    func(*client.Client) repository[T]

	edit     *draft.Schema[T]
	create   *draft.Schema[F]
	template func(now time.Time) F
	build    func(f F, now time.Time) T

	// describe prints details outside the edit form. Optional.
	describe func(w io.Writer, v T)
	// extra returns additional subcommands. Optional.
	extra func(o *options) []*cobra.Command
}

func resourceCmd[T, F any](o *options, r resource[T, F]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   r.name,
		Short: "Browse and edit " + r.name,
	}
	cmd.AddCommand(
		r.listCmd(o),
		r.showCmd(o),
		r.editCmd(o),
		r.createCmd(o),
		r.fieldsCmd(),
	)
	if r.extra != nil {
		cmd.AddCommand(r.extra(o)...)
	}
	return cmd
}

func (r resource[T, F]) listCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all " + r.name,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := o.client()
			if err != nil {
				return err
			}
			ctx, cancel := o.context(cmd)
			defer cancel()

			records, err := r.repo(c).List(ctx)
			if err != nil {
				return errors.Wrapf(err, "list %s", r.name)
			}
			return writeTable(cmd.OutOrStdout(), r.columns, records, r.row)
		},
	}
}

func (r resource[T, F]) showCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|path>",
		Short: "Show one " + strings.ToLower(r.edit.Label()),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.client()
			if err != nil {
				return err
			}
			ctx, cancel := o.context(cmd)
			defer cancel()

			ctrl := detail.New[T](r.repo(c), r.edit, o.logger())
			defer ctrl.Close()

			t, err := r.target(args)
			if err != nil {
				return err
			}
			err = ctrl.Mount(ctx, t)
			r.render(cmd.OutOrStdout(), ctrl.View())
			return err
		},
	}
}

func (r resource[T, F]) editCmd(o *options) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "edit <id|path> --set field=value...",
		Short: "Edit one " + strings.ToLower(r.edit.Label()),
		Long: "Loads the record, applies every --set to a draft and submits it. " +
			"Run \"" + r.name + " fields\" to list the editable fields.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := parseAssignments(sets)
			if err != nil {
				return err
			}
			c, err := o.client()
			if err != nil {
				return err
			}
			ctx, cancel := o.context(cmd)
			defer cancel()

			t, err := r.target(args)
			if err != nil {
				return err
			}
			ctrl := detail.New[T](r.repo(c), r.edit, o.logger())
			defer ctrl.Close()

			out := cmd.OutOrStdout()
			if err := ctrl.Mount(ctx, t); err != nil {
				r.render(out, ctrl.View())
				return err
			}
			if err := ctrl.Edit(); err != nil {
				return err
			}
			for _, a := range assignments {
				if err := ctrl.SetField(a.name, a.value); err != nil {
					return err
				}
			}
			err = ctrl.Submit(ctx)
			r.render(out, ctrl.View())
			return err
		},
	}
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "Field assignment, e.g. --set status=Shipped")
	return cmd
}

func (r resource[T, F]) createCmd(o *options) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "create --set field=value...",
		Short: "Create a " + strings.ToLower(r.create.Label()),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			assignments, err := parseAssignments(sets)
			if err != nil {
				return err
			}
			now := time.Now()
			ed := draft.NewEditor(r.create, r.template(now))
			for _, a := range assignments {
				if err := ed.Set(a.name, a.value); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if err := ed.Validate(); err != nil {
				var verr *draft.ValidationError
				if errors.As(err, &verr) {
					renderMessage(out, detail.Message{Tone: detail.ToneError, Text: verr.Message})
					renderIssues(out, verr.Issues)
				}
				return err
			}

			c, err := o.client()
			if err != nil {
				return err
			}
			ctx, cancel := o.context(cmd)
			defer cancel()

			created, err := r.repo(c).Create(ctx, r.build(ed.Draft(), now))
			if err != nil {
				renderMessage(out, detail.Message{
					Tone: detail.ToneError,
					Text: fmt.Sprintf("Failed to create %s.", strings.ToLower(r.create.Label())),
				})
				return err
			}
			renderMessage(out, detail.Message{
				Tone: detail.ToneSuccess,
				Text: fmt.Sprintf("%s #%s created successfully!", r.create.Label(), r.key(&created)),
			})
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "Field assignment, e.g. --set name=Kettle")
	return cmd
}

func (r resource[T, F]) fieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the fields accepted by edit and create",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, "edit:")
			if err := writeFields(out, r.edit.Fields()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, "create:")
			return writeFields(out, r.create.Fields())
		},
	}
}

// target resolves a bare id or a dashboard path such as "/orders/ORD-1".
func (r resource[T, F]) target(args []string) (detail.Target, error) {
	if len(args) == 0 || !strings.Contains(args[0], "/") {
		return detail.TargetFromArgs(r.name, args), nil
	}
	t, err := detail.TargetFromPath(args[0], r.name)
	if err != nil {
		return detail.Target{}, errors.Wrap(err, "resolve target")
	}
	return t, nil
}

func (r resource[T, F]) render(w io.Writer, v detail.View[T]) {
	renderMessage(w, v.Message)
	renderIssues(w, v.Issues)
	if !v.State.Ready() {
		return
	}

	_, _ = fmt.Fprintf(w, "%s #%s (%s)\n", v.Label, v.ID, v.State)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, f := range v.Fields {
		mark := " "
		if f.Touched {
			mark = "*"
		}
		_, _ = fmt.Fprintf(tw, " %s%s:\t%s\n", mark, f.Label, f.Value)
	}
	_ = tw.Flush()
	if r.describe != nil {
		r.describe(w, v.Record)
	}
}

func renderMessage(w io.Writer, m detail.Message) {
	if m.Empty() {
		return
	}
	prefix := "info"
	switch m.Tone {
	case detail.ToneSuccess:
		prefix = "success"
	case detail.ToneError:
		prefix = "error"
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", prefix, m.Text)
}

func renderIssues(w io.Writer, issues []draft.Issue) {
	for _, i := range issues {
		_, _ = fmt.Fprintf(w, "  - %s: %s\n", i.Field, i.Message)
	}
}

func writeTable[T any](w io.Writer, columns []string, records []T, row func(T) []string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for _, rec := range records {
		_, _ = fmt.Fprintln(tw, strings.Join(row(rec), "\t"))
	}
	return tw.Flush()
}

func writeFields[T any](w io.Writer, fields []draft.Field[T]) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, f := range fields {
		line := fmt.Sprintf("  %s\t%s\t%s", f.Name(), f.Kind(), f.Label())
		if opts := f.Options(); len(opts) > 0 {
			line += "\t" + strings.Join(opts, " | ")
		}
		_, _ = fmt.Fprintln(tw, line)
	}
	return tw.Flush()
}

type assignment struct {
	name  string
	value string
}

func parseAssignments(sets []string) ([]assignment, error) {
	out := make([]assignment, 0, len(sets))
	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.Errorf("invalid --set %q: want field=value", s)
		}
		out = append(out, assignment{name: name, value: value})
	}
	return out, nil
}
