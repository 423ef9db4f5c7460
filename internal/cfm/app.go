package cfm

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"github.com/jkwiatkowski/cfm/internal/cfm/ctx"
	"github.com/jkwiatkowski/cfm/internal/cfm/stats"
	"github.com/jkwiatkowski/cfm/internal/lang"
	"github.com/jkwiatkowski/cfm/internal/model"
	"github.com/jkwiatkowski/cfm/internal/rowstore"
)

// tableColumns is the display order of the row columns; the number keys
// 1..9,0 sort by the column at the matching position.
var tableColumns = []string{
	rowstore.ColName,
	rowstore.ColParticipants,
	rowstore.ColType,
	rowstore.ColMessages,
	rowstore.ColCall,
	rowstore.ColPhotos,
	rowstore.ColGifs,
	rowstore.ColVideos,
	rowstore.ColFiles,
	rowstore.ColCharacters,
}

var columnTitleKeys = map[string]string{
	rowstore.ColName:         lang.KeyName,
	rowstore.ColParticipants: lang.KeyParticipants,
	rowstore.ColType:         lang.KeyChatType,
	rowstore.ColMessages:     lang.KeyMessages,
	rowstore.ColCall:         lang.KeyCallDuration,
	rowstore.ColPhotos:       lang.KeyPhotos,
	rowstore.ColGifs:         lang.KeyGifs,
	rowstore.ColVideos:       lang.KeyVideos,
	rowstore.ColFiles:        lang.KeyFiles,
	rowstore.ColCharacters:   lang.KeyCharacters,
}

// App is the console interface: a sortable, searchable table over the
// scanned conversations with a per-conversation detail page.
type App struct {
	*tview.Application

	ctx *ctx.Context
	m   *Manager

	pages   *tview.Pages
	infoBar *tview.TextView
	table   *tview.Table
	footer  *tview.TextView
	search  *tview.InputField
	detail  *tview.TextView

	rows      []rowstore.Row
	query     string
	sortCol   string
	sortDesc  bool
	searching bool
}

func NewApp(appCtx *ctx.Context, m *Manager) *App {
	a := &App{
		Application: tview.NewApplication(),
		ctx:         appCtx,
		m:           m,
		pages:       tview.NewPages(),
		infoBar:     tview.NewTextView().SetDynamicColors(true),
		table:       tview.NewTable(),
		footer:      tview.NewTextView().SetDynamicColors(true),
		search:      tview.NewInputField(),
		detail:      tview.NewTextView().SetDynamicColors(true),
	}

	a.table.SetSelectable(true, false).SetFixed(1, 0)
	a.table.SetBorder(true)
	a.table.SetSelectedFunc(func(row, col int) {
		a.showDetail(row)
	})

	a.search.SetLabel(a.tr(lang.KeySearch) + ": ")
	a.search.SetDoneFunc(func(key tcell.Key) {
		a.searching = false
		if key == tcell.KeyEnter {
			a.query = a.search.GetText()
		}
		a.pages.HidePage("search")
		a.renderTable()
		a.SetFocus(a.table)
	})

	a.detail.SetBorder(true)
	a.detail.SetDoneFunc(func(key tcell.Key) {
		a.pages.HidePage("detail")
		a.SetFocus(a.table)
	})

	return a
}

func (a *App) Run() error {
	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.infoBar, 3, 0, false).
		AddItem(a.table, 0, 1, true).
		AddItem(a.footer, 1, 0, false)

	a.pages.AddPage("main", flex, true, true)
	a.pages.AddPage("search", modal(a.search, 50, 3), true, false)
	a.pages.AddPage("detail", modal(a.detail, 72, 24), true, false)

	a.SetInputCapture(a.inputCapture)

	a.m.db.SetProgressSink(func(processed, total int) {
		a.QueueUpdateDraw(func() {
			a.footer.SetText(fmt.Sprintf(" %s... %d/%d", a.tr(lang.KeyLoading), processed, total))
		})
	})

	a.renderInfoBar()
	a.renderFooter()
	go a.rescan(false)

	return a.SetRoot(a.pages, true).EnableMouse(false).Run()
}

func (a *App) inputCapture(event *tcell.EventKey) *tcell.EventKey {
	if a.searching {
		return event
	}
	if name, _ := a.pages.GetFrontPage(); name == "detail" {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
			a.pages.HidePage("detail")
			a.SetFocus(a.table)
			return nil
		}
		return event
	}

	switch event.Rune() {
	case 'q':
		a.Stop()
		return nil
	case 'r':
		go a.rescan(true)
		return nil
	case '/':
		a.searching = true
		a.search.SetText(a.query)
		a.pages.ShowPage("search")
		a.SetFocus(a.search)
		return nil
	}

	if r := event.Rune(); r >= '0' && r <= '9' {
		idx := int(r-'0') - 1
		if r == '0' {
			idx = 9
		}
		if idx >= 0 && idx < len(tableColumns) {
			a.toggleSort(tableColumns[idx])
		}
		return nil
	}

	return event
}

func (a *App) toggleSort(column string) {
	if a.sortCol == column {
		a.sortDesc = !a.sortDesc
	} else {
		a.sortCol = column
		a.sortDesc = false
	}
	a.renderTable()
}

func (a *App) rescan(force bool) {
	if err := a.m.Scan(force); err != nil {
		log.Err(err).Msg("scan failed")
		a.QueueUpdateDraw(func() {
			a.footer.SetText(fmt.Sprintf(" [red]%v", err))
		})
		return
	}
	rows, _, err := a.m.db.Query(stats.QueryOptions{})
	if err != nil {
		log.Err(err).Msg("query failed")
		return
	}
	a.QueueUpdateDraw(func() {
		a.rows = rows
		a.renderInfoBar()
		a.renderTable()
		a.renderFooter()
	})
}

func (a *App) renderInfoBar() {
	totals := a.ctx.Totals
	a.infoBar.SetText(fmt.Sprintf(
		" [yellow]%s[-] %s  |  %s  |  %s: %d  %s: %d  %s: %d",
		a.ctx.GetUsername(),
		a.ctx.GetRoot(),
		a.ctx.GetDateRange().String(),
		a.tr(lang.KeyConversations), a.ctx.Conversations,
		a.tr(lang.KeyTotalMessages), totals.TotalMessages,
		a.tr(lang.KeySentMessages), totals.SentByOwner,
	))
}

func (a *App) renderFooter() {
	a.footer.SetText(" [yellow]q[-] quit  [yellow]r[-] rescan  [yellow]/[-] search  [yellow]1-9,0[-] sort  [yellow]enter[-] details")
}

func (a *App) renderTable() {
	a.table.Clear()

	for col, column := range tableColumns {
		title := a.tr(columnTitleKeys[column])
		if column == a.sortCol {
			if a.sortDesc {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		cell := tview.NewTableCell(title).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetAlign(tview.AlignCenter)
		a.table.SetCell(0, col, cell)
	}

	view := rowstore.New()
	view.Reset(a.rows)
	if a.sortCol != "" {
		if err := view.Sort(a.sortCol, a.sortDesc); err != nil {
			log.Debug().Err(err).Str("column", a.sortCol).Msg("sort failed")
		}
	}
	rows := view.Search(a.query)

	for i, r := range rows {
		a.table.SetCell(i+1, 0, tview.NewTableCell(r.Name).SetReference(r.FolderID))
		a.table.SetCell(i+1, 1, tview.NewTableCell(strconv.Itoa(len(r.Participants))))
		a.table.SetCell(i+1, 2, tview.NewTableCell(a.kindLabel(r.Kind)))
		a.table.SetCell(i+1, 3, numCell(r.Messages))
		a.table.SetCell(i+1, 4, numCell(r.CallDuration))
		a.table.SetCell(i+1, 5, numCell(r.Photos))
		a.table.SetCell(i+1, 6, numCell(r.Gifs))
		a.table.SetCell(i+1, 7, numCell(r.Videos))
		a.table.SetCell(i+1, 8, numCell(r.Files))
		a.table.SetCell(i+1, 9, numCell(r.Characters))
	}

	a.table.ScrollToBeginning()
}

func (a *App) showDetail(row int) {
	if row < 1 {
		return
	}
	ref := a.table.GetCell(row, 0).GetReference()
	folderID, ok := ref.(string)
	if !ok || folderID == "" {
		return
	}

	agg, err := a.m.db.Detail(folderID)
	if err != nil {
		log.Err(err).Str("folder", folderID).Msg("load conversation detail failed")
		return
	}

	a.detail.SetTitle(" " + agg.Title + " ")
	a.detail.SetText(a.formatDetail(agg))
	a.pages.ShowPage("detail")
	a.SetFocus(a.detail)
}

func (a *App) formatDetail(agg *model.ConversationAggregate) string {
	names := make([]string, 0, len(agg.Participants))
	for name := range agg.Participants {
		names = append(names, name)
	}
	sort.Strings(names)

	text := fmt.Sprintf("[yellow]%s[-]: %s\n", a.tr(lang.KeyChatType), a.kindLabel(agg.Kind))
	text += fmt.Sprintf("[yellow]%s[-] (%d):\n", a.tr(lang.KeyParticipants), len(names))
	for _, name := range names {
		text += fmt.Sprintf("  %s - %d\n", name, agg.Participants[name])
	}
	text += fmt.Sprintf("[yellow]%s[-]: %d\n", a.tr(lang.KeyMessages), agg.TotalMessages)
	text += fmt.Sprintf("[yellow]%s[-]: %d\n", a.tr(lang.KeyCharacters), agg.TotalCharacters)
	text += fmt.Sprintf("[yellow]%s[-]: %d\n", a.tr(lang.KeyPhotos), agg.PhotoCount)
	text += fmt.Sprintf("[yellow]%s[-]: %d\n", a.tr(lang.KeyGifs), agg.GifCount)
	text += fmt.Sprintf("[yellow]%s[-]: %d\n", a.tr(lang.KeyVideos), agg.VideoCount)
	text += fmt.Sprintf("[yellow]%s[-]: %d\n", a.tr(lang.KeyFiles), agg.FileCount)
	text += fmt.Sprintf("[yellow]%s[-]: %s\n", a.tr(lang.KeyCallDuration), (time.Duration(agg.CallDuration) * time.Second).String())
	if agg.EarliestTimestampMs != 0 {
		text += fmt.Sprintf("[yellow]%s[-]: %s\n", a.tr(lang.KeyStartDate), time.UnixMilli(agg.EarliestTimestampMs).Format("2006-01-02 15:04:05"))
	}

	avg := agg.Averages(time.Now())
	text += fmt.Sprintf("\n%s - %.2f\n%s - %.2f\n%s - %.2f\n%s - %.2f\n",
		a.tr(lang.KeyPerDay), avg.PerDay,
		a.tr(lang.KeyPerWeek), avg.PerWeek,
		a.tr(lang.KeyPerMonth), avg.PerMonth,
		a.tr(lang.KeyPerYear), avg.PerYear,
	)
	return text
}

func (a *App) kindLabel(kind model.ChatKind) string {
	if kind == model.ChatGroup {
		return a.tr(lang.KeyGroupChat)
	}
	return a.tr(lang.KeyPrivateChat)
}

func (a *App) tr(key string) string {
	return lang.T(a.ctx.GetLanguage(), key)
}

func numCell(v int64) *tview.TableCell {
	return tview.NewTableCell(strconv.FormatInt(v, 10)).SetAlign(tview.AlignRight)
}

// modal centers a primitive inside the screen.
func modal(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}
