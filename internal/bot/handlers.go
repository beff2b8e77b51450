package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nuscanoeing/canoebot/internal/attendance"
	"github.com/nuscanoeing/canoebot/internal/boat"
	"github.com/nuscanoeing/canoebot/internal/logger"
	"github.com/nuscanoeing/canoebot/internal/render"
	"github.com/nuscanoeing/canoebot/internal/week"
)

// Command names as typed by users.
const (
	CmdStart         = "start"
	CmdHelp          = "help"
	CmdQuote         = "getQuote"
	CmdBoat          = "getBoatAllocation"
	CmdAttendance    = "getAttendance"
	StartText        = "Hi!"
	NoAllocationText = "No boat allocation has been posted for today."
)

// Command is one entry of the help text and the Telegram command menu.
type Command struct {
	Name        string
	Description string
}

// Menu lists the commands shown by /help, in order.
var Menu = []Command{
	{CmdHelp, "Display available commands"},
	{CmdQuote, "Generate a quote for the day"},
	{CmdBoat, "Get today's boat allocation"},
	{CmdAttendance, "Get the attendance for the previous month"},
}

// HelpText is the reply to /help.
func HelpText() string {
	lines := make([]string, len(Menu))
	for i, c := range Menu {
		lines[i] = "/" + c.Name + " - " + c.Description
	}
	return strings.Join(lines, "\n")
}

// QuoteFetcher returns the text of a quote, or a user-facing error text.
type QuoteFetcher interface {
	Fetch(ctx context.Context) string
}

// BoatReader reads a day's boat allocation.
type BoatReader interface {
	ForDay(ctx context.Context, t time.Time) ([]boat.Allocation, error)
}

// AttendanceReporter builds and publishes monthly attendance.
type AttendanceReporter interface {
	Build(ctx context.Context, today time.Time) (attendance.Report, error)
	Publish(ctx context.Context, report attendance.Report) (string, error)
	CanPublish() bool
}

// ImageRenderer turns an HTML document into a hosted image URL.
type ImageRenderer interface {
	Render(ctx context.Context, html, css string) (string, error)
}

// Services are the backends behind the commands. Images may be nil.
type Services struct {
	Clock      week.Clock
	Quotes     QuoteFetcher
	Boats      BoatReader
	Attendance AttendanceReporter
	Images     ImageRenderer
}

// Register installs the club commands on r.
func Register(r *Router, svc Services) {
	if svc.Clock == nil {
		svc.Clock = week.SystemClock(time.Local)
	}
	h := &handlers{svc: svc}

	r.HandleFunc(CmdStart, h.start)
	r.HandleFunc(CmdHelp, h.help)
	r.HandleFunc(CmdQuote, h.quote)
	r.HandleFunc(CmdBoat, h.boats)
	r.HandleFunc(CmdAttendance, h.attendance)
}

type handlers struct {
	svc Services
}

func (h *handlers) start(context.Context, Request) (Reply, error) {
	return Reply{Text: StartText}, nil
}

func (h *handlers) help(context.Context, Request) (Reply, error) {
	return Reply{Text: HelpText()}, nil
}

func (h *handlers) quote(ctx context.Context, _ Request) (Reply, error) {
	if h.svc.Quotes == nil {
		return Reply{}, fmt.Errorf("quote service not configured")
	}
	return Reply{Text: h.svc.Quotes.Fetch(ctx)}, nil
}

func (h *handlers) boats(ctx context.Context, _ Request) (Reply, error) {
	if h.svc.Boats == nil {
		return Reply{}, fmt.Errorf("spreadsheet not configured")
	}
	today := h.svc.Clock()
	rows, err := h.svc.Boats.ForDay(ctx, today)
	if errors.Is(err, boat.ErrNoAllocation) {
		return Reply{Text: NoAllocationText}, nil
	}
	if err != nil {
		return Reply{}, err
	}

	if h.svc.Images != nil {
		url, err := h.renderBoats(ctx, rows)
		if err == nil {
			return Reply{PhotoURL: url, Caption: "Boat allocation for " + week.Day(today)}, nil
		}
		logger.Warn("Falling back to text table", logger.Fields{"error": err.Error()})
	}
	return Reply{Text: boat.Table(rows), Pre: true}, nil
}

func (h *handlers) renderBoats(ctx context.Context, rows []boat.Allocation) (string, error) {
	html, err := render.Table(boat.Headers, boat.CellRows(rows))
	if err != nil {
		return "", err
	}
	return h.svc.Images.Render(ctx, html, render.CSS)
}

func (h *handlers) attendance(ctx context.Context, _ Request) (Reply, error) {
	if h.svc.Attendance == nil {
		return Reply{}, fmt.Errorf("spreadsheet not configured")
	}
	report, err := h.svc.Attendance.Build(ctx, h.svc.Clock())
	if err != nil {
		return Reply{}, err
	}

	var reply Reply
	if h.svc.Attendance.CanPublish() {
		if _, err := h.svc.Attendance.Publish(ctx, report); err != nil {
			return Reply{}, err
		}
		reply.Text = fmt.Sprintf("Attendance for %s is created on the Google drive!", report.Month)
	}

	data, err := report.Workbook()
	if err != nil {
		if reply.Text == "" {
			return Reply{}, err
		}
		logger.Error("Attendance workbook export failed", logger.Fields{"month": report.Month}, err)
		return reply, nil
	}
	reply.Document = &Document{Name: report.WorkbookName(), Data: data}
	reply.Caption = report.Title
	return reply, nil
}
