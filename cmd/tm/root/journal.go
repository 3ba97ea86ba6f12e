package root

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kosharny/ThunderpickMove/internal/engine"
	"github.com/kosharny/ThunderpickMove/internal/media"
	"github.com/kosharny/ThunderpickMove/internal/ui"
)

func newJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Write and review the mood journal",
	}
	cmd.AddCommand(newJournalAddCmd(), newJournalListCmd(), newJournalShowCmd(), newJournalDeleteCmd(), newJournalMoodCmd())
	return cmd
}

func newJournalAddCmd() *cobra.Command {
	var mood, photo, audio, voiceText string

	cmd := &cobra.Command{
		Use:   "add <notes>",
		Short: "Add a journal entry",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("notes are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, ok := engine.ParseMood(mood)
			if !ok {
				return fmt.Errorf("invalid mood %q (use: confidence, stress, dominance)", mood)
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			entry := engine.NewJournalEntry(m, args[0], a.svc.Now())
			entry.VoiceText = voiceText
			if photo != "" {
				data, err := os.ReadFile(photo)
				if err != nil {
					logger.Warn("photo unreadable, saving entry without it", zap.String("path", photo), zap.Error(err))
				} else {
					entry.PhotoPath = a.media.SaveImage(data)
				}
			}
			if audio != "" {
				entry.AudioPath = a.media.SaveAudio(audio)
			}

			before := a.svc.Progress(ctx)
			p := a.svc.AddJournalEntry(ctx, entry)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconJournal+" Saved"), ui.MoodIcon(m), ui.Muted.Render(shortID(entry.ID)))
			if entry.HasAudio() {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("+%d voice", engine.VoiceJournalBoost)))
			}
			printNewBadges(cmd, before.UnlockedBadges, p.UnlockedBadges)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mood, "mood", "m", "confidence", "Mood (confidence|stress|dominance)")
	cmd.Flags().StringVar(&photo, "photo", "", "Attach a photo file")
	cmd.Flags().StringVar(&audio, "audio", "", "Attach a voice recording file")
	cmd.Flags().StringVar(&voiceText, "voice-text", "", "Transcript of the recording")

	return cmd
}

func newJournalListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List journal entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			entries := a.svc.JournalEntries(ctx)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconJournal, "Journal"))
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(empty)"))
				return nil
			}
			for i, e := range entries {
				extras := ""
				if e.HasPhoto() {
					extras += " 📷"
				}
				if e.HasAudio() {
					extras += " 🎙️"
				}
				fmt.Fprintf(out, "%2d. %s %s %s %s%s\n", i+1, ui.MoodIcon(e.Mood),
					ui.Muted.Render(e.Date.In(a.svc.Location()).Format("2006-01-02 15:04")),
					ui.Muted.Render(shortID(e.ID)), e.Notes, extras)
				if e.VoiceText != "" {
					fmt.Fprintln(out, "    "+ui.Muted.Render("“"+e.VoiceText+"”"))
				}
			}
			return nil
		},
	}
}

func newJournalShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|number>",
		Short: "Show one journal entry and its attachments",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("entry id or list number is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			e, ok := findEntry(a.svc.JournalEntries(ctx), args[0])
			if !ok {
				return fmt.Errorf("journal entry %q not found", args[0])
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.MoodIcon(e.Mood), string(e.Mood)))
			fmt.Fprintln(out, ui.LabelValue("ID", e.ID))
			fmt.Fprintln(out, ui.LabelValue("Date", e.Date.In(a.svc.Location()).Format("2006-01-02 15:04")))
			fmt.Fprintln(out, ui.LabelValue("Notes", e.Notes))
			if e.VoiceText != "" {
				fmt.Fprintln(out, ui.LabelValue("Transcript", e.VoiceText))
			}
			if e.HasPhoto() {
				fmt.Fprintln(out, ui.LabelValue("Photo", attachment(a.media, e.PhotoPath)))
			}
			if e.HasAudio() {
				fmt.Fprintln(out, ui.LabelValue("Audio", attachment(a.media, e.AudioPath)))
			}
			return nil
		},
	}
}

// attachment describes a stored media file, or notes that it is gone.
func attachment(store *media.FileStore, ref string) string {
	data, err := store.Read(ref)
	if err != nil {
		logger.Debug("attachment unreadable", zap.String("ref", ref), zap.Error(err))
		return ui.Warn.Render(ref + " (missing)")
	}
	path, _ := store.Path(ref)
	return fmt.Sprintf("%s %s", path, ui.Muted.Render("("+humanize.Bytes(uint64(len(data)))+")"))
}

// findEntry resolves a 1-based list number or an entry ID (prefix).
func findEntry(entries []engine.JournalEntry, ref string) (engine.JournalEntry, bool) {
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(entries) {
		return entries[n-1], true
	}
	id := resolveEntryID(entries, ref)
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return engine.JournalEntry{}, false
}

func newJournalDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id|number>",
		Short: "Delete a journal entry (counters and badges are kept)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("entry id or list number is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			ref := args[0]
			var removed bool
			if n, err := strconv.Atoi(ref); err == nil {
				removed = a.svc.DeleteJournalEntryAt(ctx, n-1)
			} else {
				removed = a.svc.DeleteJournalEntry(ctx, resolveEntryID(a.svc.JournalEntries(ctx), ref))
			}
			if !removed {
				return fmt.Errorf("journal entry %q not found", ref)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("🗑️ Deleted ")+ui.Muted.Render(ref))
			return nil
		},
	}
}

// resolveEntryID expands an ID prefix to the full ID when it is unambiguous.
func resolveEntryID(entries []engine.JournalEntry, ref string) string {
	match := ""
	for _, e := range entries {
		if e.ID == ref {
			return ref
		}
		if len(ref) >= 4 && len(e.ID) >= len(ref) && e.ID[:len(ref)] == ref {
			if match != "" {
				return ref
			}
			match = e.ID
		}
	}
	if match != "" {
		return match
	}
	return ref
}

func newJournalMoodCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Show confidence vs stress per day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			stats := engine.MoodBreakdown(a.svc.JournalEntries(ctx), engine.LastNDays(a.svc.Now(), days))
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading("📈", "Mood"))
			for _, s := range stats {
				fmt.Fprintf(out, "%s  %s %s  %s %s\n", s.Day.Format("Mon 01-02"),
					ui.MoodIcon(engine.MoodConfidence), ui.Good.Render(fmt.Sprintf("%-3d", s.Confidence)),
					ui.MoodIcon(engine.MoodStress), ui.Bad.Render(fmt.Sprintf("%-3d", s.Stress)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 7, "Number of days")
	return cmd
}
