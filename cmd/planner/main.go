package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"

	"meetup-lab/domain"
	"meetup-lab/domain/search"
	"meetup-lab/internal"
	"meetup-lab/projection"
	"meetup-lab/repositories"
	"meetup-lab/services"
)

// Exit codes to provide meaningful status to the operating system or service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Planner terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, drives the prompt loop, and centralizes
// error reporting so every defer (database close, index close) executes
// before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	weekdays, err := internal.MeetingWeekdays(config.MeetingDays)
	if err != nil {
		return exitConfig, err
	}
	labels, err := internal.TimeLabels(config.DefaultTimes)
	if err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Search index (Bluge)
	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	// 4. Planner session
	plannerConfig := services.PlannerConfig{
		ServerName:        config.ServerName,
		ServerID:          config.ServerID,
		MeetingDays:       weekdays,
		DefaultTimes:      labels,
		TopicVotingWindow: config.TopicVotingWindow,
		TimeVotingWindow:  config.TimeVotingWindow,
		AllowLateVotes:    config.AllowLateVotes,
	}
	store := repositories.NewPlanRepository(db, logger)
	index := repositories.NewTopicIndex(blugeWriter, logger)
	planner := services.NewPlannerService(logger, plannerConfig, store, index, nil)

	if config.DebugPort > 0 {
		endpoint := "/inspect"
		logger.Info("Debug inspector available", "url", fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint))
		internal.StartDebugServer(db, config.DebugPort, endpoint, TopicMapper, func() map[string]any {
			stats := planner.Stats()
			if rss, cpu, err := internal.ProcessStats(); err == nil {
				stats["RssMb"] = rss
				stats["Cpu"] = fmt.Sprintf("%.1f%%", cpu)
			}
			return stats
		})
	}

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		prompt(ctx, planner, plannerConfig)
	}()

	select {
	case <-ctx.Done():
	case <-done:
	}
	logger.Info("Planner session ended")
	return exitOK, nil
}

// TopicMapper enriches the inspect page with decoded topic values.
func TopicMapper(key string, val []byte) internal.InspectRow {
	row := internal.DefaultMapper(key, val)
	if !strings.HasPrefix(key, "topic:") {
		return row
	}
	var topic domain.Topic
	if err := json.Unmarshal(val, &topic); err != nil {
		return row
	}
	row.Detail = fmt.Sprintf("%s [%s]", topic.Title, topic.Category)
	row.Votes = strconv.Itoa(topic.Votes)
	return row
}

// session holds prompt-local state: the display name used for attribution
// and the last listing, so entities can be addressed by row number instead
// of uuid.
type session struct {
	planner *services.PlannerService
	config  services.PlannerConfig
	name    string
	topics  []domain.Topic
}

func prompt(ctx context.Context, planner *services.PlannerService, config services.PlannerConfig) {
	s := &session{planner: planner, config: config, name: "Anonymous User"}

	header := fmt.Sprintf("  ====== %s ======", config.ServerName)
	fmt.Println(color.New(color.BgBlack, color.FgGreen).Render(header))
	fmt.Println("Type 'help' for commands, 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(color.Green.Render("planner> "))
		if !scanner.Scan() {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}
		s.dispatch(ctx, line)
	}
}

func (s *session) dispatch(ctx context.Context, line string) {
	cmd, rest, _ := strings.Cut(line, " ")
	var err error
	switch cmd {
	case "help":
		s.help()
	case "name":
		if rest != "" {
			s.name = rest
		}
		fmt.Println("You are:", s.name)
	case "topics":
		s.listTopics(nil)
	case "top":
		s.topTopics(rest)
	case "add":
		err = s.addTopic(rest)
	case "vote":
		err = s.voteTopic(rest)
	case "select":
		err = s.selectTopic(rest)
	case "category":
		err = s.setCategory(rest)
	case "resource":
		err = s.addResource(rest)
	case "question":
		err = s.addQuestion(rest)
	case "questions":
		err = s.listQuestions(rest)
	case "vote-q":
		err = s.voteQuestion(rest)
	case "answer":
		err = s.answerQuestion(rest)
	case "join":
		err = s.joinTopic(rest)
	case "slots":
		s.listSlots()
	case "vote-slot":
		err = s.voteSlot(rest)
	case "select-slot":
		err = s.selectSlot(rest)
	case "advance":
		err = s.advance()
	case "reset":
		err = s.reset()
	case "agenda":
		s.agenda()
	case "calendar":
		s.calendar()
	case "find":
		err = s.find(ctx, rest)
	default:
		fmt.Println("Unknown command. Type 'help'.")
	}
	if err != nil {
		fmt.Println(color.Red.Render("✗ " + err.Error()))
	}
}

func (s *session) help() {
	fmt.Print(`Commands:
  topics                          list all topics
  top [n] [category]              leaderboard
  add <category> <title> | <desc> propose a topic
  vote <#> <+|->                  vote a topic up or down
  select <#>                      pick the meeting topic (starts time voting)
  category <name>                 restrict this cycle to one category
  resource <#> <kind> <url> <title...>
  question <#> <text...>
  questions <#>                   list a topic's questions
  vote-q <#> <q#>                 upvote a question
  answer <#> <q#> <text...>       answer a question
  join <#> [name]                 join a topic's discussion
  slots / vote-slot <#> / select-slot <#>
  advance                         finalize preparation → scheduled
  reset                           start a new cycle on a scheduled meeting
  agenda / calendar               current cycle views
  find <terms> [--category c] [--limit n]
  name <display name>             set who you are
`)
}

func (s *session) listTopics(category *domain.Category) {
	s.topics = s.planner.Topics(category)
	renderTopics(s.topics)
}

func (s *session) topTopics(rest string) {
	n := 10
	var category *domain.Category
	for _, arg := range strings.Fields(rest) {
		if parsed, err := strconv.Atoi(arg); err == nil {
			n = parsed
		} else if c, err := domain.ParseCategory(arg); err == nil {
			category = &c
		}
	}
	s.topics = s.planner.TopTopics(n, category)
	renderTopics(s.topics)
}

func (s *session) addTopic(rest string) error {
	category, rest, _ := strings.Cut(strings.TrimSpace(rest), " ")
	title, description, _ := strings.Cut(rest, "|")
	topic, err := s.planner.AddTopic(services.AddTopicRequest{
		Title:       strings.TrimSpace(title),
		Category:    category,
		Description: strings.TrimSpace(description),
	})
	if err != nil {
		return err
	}
	fmt.Printf("Added %q [%s]\n", topic.Title, topic.Category)
	return nil
}

func (s *session) voteTopic(rest string) error {
	args := strings.Fields(rest)
	if len(args) < 2 {
		return fmt.Errorf("usage: vote <#> <+|->")
	}
	topic, err := s.topicAt(args[0])
	if err != nil {
		return err
	}
	delta := 1
	if args[1] == "-" {
		delta = -1
	}
	updated, err := s.planner.VoteTopic(topic.ID, delta)
	if err != nil {
		return err
	}
	fmt.Printf("%q now at %d votes\n", updated.Title, updated.Votes)
	return nil
}

func (s *session) selectTopic(rest string) error {
	topic, err := s.topicAt(strings.TrimSpace(rest))
	if err != nil {
		return err
	}
	meeting, err := s.planner.SelectTopic(s.planner.CurrentMeeting().ID, topic.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Selected %q: phase is now %s\n", topic.Title, meeting.Phase)
	return nil
}

func (s *session) setCategory(rest string) error {
	meeting, err := s.planner.SetMeetingCategory(s.planner.CurrentMeeting().ID, strings.TrimSpace(rest))
	if err != nil {
		return err
	}
	fmt.Printf("Cycle restricted to %s\n", *meeting.Category)
	return nil
}

func (s *session) addResource(rest string) error {
	args := strings.Fields(rest)
	if len(args) < 4 {
		return fmt.Errorf("usage: resource <#> <kind> <url> <title...>")
	}
	topic, err := s.topicAt(args[0])
	if err != nil {
		return err
	}
	resource, err := s.planner.AddResource(services.AddResourceRequest{
		TopicID: topic.ID,
		Title:   strings.Join(args[3:], " "),
		Kind:    args[1],
		URL:     args[2],
		AddedBy: s.name,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Shared %s %q\n", resource.Kind, resource.Title)
	return nil
}

func (s *session) addQuestion(rest string) error {
	args := strings.Fields(rest)
	if len(args) < 2 {
		return fmt.Errorf("usage: question <#> <text...>")
	}
	topic, err := s.topicAt(args[0])
	if err != nil {
		return err
	}
	_, err = s.planner.AddQuestion(services.AddQuestionRequest{
		TopicID: topic.ID,
		Content: strings.Join(args[1:], " "),
		AskedBy: s.name,
	})
	return err
}

func (s *session) listQuestions(rest string) error {
	topic, err := s.topicAt(strings.TrimSpace(rest))
	if err != nil {
		return err
	}
	for _, t := range s.planner.Topics(nil) {
		if t.ID == topic.ID {
			renderQuestions(t)
			return nil
		}
	}
	renderQuestions(*topic)
	return nil
}

func (s *session) voteQuestion(rest string) error {
	args := strings.Fields(rest)
	if len(args) < 2 {
		return fmt.Errorf("usage: vote-q <#> <q#>")
	}
	topic, err := s.topicAt(args[0])
	if err != nil {
		return err
	}
	question, err := s.questionAt(topic, args[1])
	if err != nil {
		return err
	}
	updated, err := s.planner.VoteQuestion(topic.ID, question.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Question now at %d votes\n", updated.Votes)
	return nil
}

func (s *session) answerQuestion(rest string) error {
	args := strings.Fields(rest)
	if len(args) < 3 {
		return fmt.Errorf("usage: answer <#> <q#> <text...>")
	}
	topic, err := s.topicAt(args[0])
	if err != nil {
		return err
	}
	question, err := s.questionAt(topic, args[1])
	if err != nil {
		return err
	}
	_, err = s.planner.AnswerQuestion(services.AnswerQuestionRequest{
		TopicID:    topic.ID,
		QuestionID: question.ID,
		Answer:     strings.Join(args[2:], " "),
	})
	return err
}

func (s *session) joinTopic(rest string) error {
	args := strings.Fields(rest)
	if len(args) < 1 {
		return fmt.Errorf("usage: join <#> [name]")
	}
	topic, err := s.topicAt(args[0])
	if err != nil {
		return err
	}
	name := s.name
	if len(args) > 1 {
		name = strings.Join(args[1:], " ")
	}
	participant, err := s.planner.JoinTopic(topic.ID, name)
	if err != nil {
		return err
	}
	fmt.Printf("%s joined %q\n", participant.Name, topic.Title)
	return nil
}

func (s *session) listSlots() {
	renderSlots(s.planner.CurrentMeeting())
}

func (s *session) voteSlot(rest string) error {
	meeting := s.planner.CurrentMeeting()
	slot, err := slotAt(meeting, strings.TrimSpace(rest))
	if err != nil {
		return err
	}
	updated, err := s.planner.VoteTimeSlot(meeting.ID, slot.ID)
	if err != nil {
		return err
	}
	fmt.Printf("%s now at %d votes\n", updated.Label, updated.Votes)
	return nil
}

func (s *session) selectSlot(rest string) error {
	meeting := s.planner.CurrentMeeting()
	slot, err := slotAt(meeting, strings.TrimSpace(rest))
	if err != nil {
		return err
	}
	updated, err := s.planner.SelectTimeSlot(meeting.ID, slot.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Meeting time fixed at %s: phase is now %s\n", slot.Label, updated.Phase)
	return nil
}

func (s *session) advance() error {
	meeting, err := s.planner.AdvancePhase(s.planner.CurrentMeeting().ID)
	if err != nil {
		return err
	}
	fmt.Println("Phase is now", meeting.Phase)
	return nil
}

func (s *session) reset() error {
	meeting, err := s.planner.ResetMeeting(s.planner.CurrentMeeting().ID)
	if err != nil {
		return err
	}
	fmt.Println("New cycle started: phase is", meeting.Phase)
	return nil
}

func (s *session) agenda() {
	meeting := s.planner.CurrentMeeting()
	agenda := projection.BuildAgenda(s.config.ServerName, meeting, domain.RestoreRegistry(s.planner.Topics(nil)), time.Now())
	renderAgenda(agenda)
}

func (s *session) calendar() {
	dates := projection.UpcomingDates(time.Now(), s.config.MeetingDays, 6)
	table := newTable([]string{"#", "Date", "Weekday"})
	for i, d := range dates {
		table.Append([]string{strconv.Itoa(i + 1), d.Format("2006-01-02"), d.Weekday().String()})
	}
	table.Render()
}

func (s *session) find(ctx context.Context, rest string) error {
	query := search.NewQuery(rest)
	topics, err := s.planner.FindTopics(ctx, query)
	if err != nil {
		return err
	}
	s.topics = topics
	renderTopics(topics)
	return nil
}

func (s *session) topicAt(arg string) (*domain.Topic, error) {
	if len(s.topics) == 0 {
		s.topics = s.planner.Topics(nil)
	}
	i, err := strconv.Atoi(arg)
	if err != nil || i < 1 || i > len(s.topics) {
		return nil, fmt.Errorf("no topic #%s: run 'topics' and use the row number", arg)
	}
	return &s.topics[i-1], nil
}

func (s *session) questionAt(topic *domain.Topic, arg string) (*domain.Question, error) {
	// Re-resolve so freshly added questions are addressable.
	for _, t := range s.planner.Topics(nil) {
		if t.ID == topic.ID {
			i, err := strconv.Atoi(arg)
			if err != nil || i < 1 || i > len(t.Questions) {
				return nil, fmt.Errorf("no question #%s on %q", arg, t.Title)
			}
			return &t.Questions[i-1], nil
		}
	}
	return nil, fmt.Errorf("topic %q no longer exists", topic.Title)
}

func slotAt(meeting domain.Meeting, arg string) (*domain.TimeSlot, error) {
	i, err := strconv.Atoi(arg)
	if err != nil || i < 1 || i > len(meeting.Slots) {
		return nil, fmt.Errorf("no slot #%s: run 'slots' and use the row number", arg)
	}
	return &meeting.Slots[i-1], nil
}

func newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func renderTopics(topics []domain.Topic) {
	if len(topics) == 0 {
		fmt.Println("No topics yet: propose one with 'add'.")
		return
	}
	table := newTable([]string{"#", "Title", "Category", "Votes", "People", "Q", "R"})
	for i, t := range topics {
		table.Append([]string{
			strconv.Itoa(i + 1),
			t.Title,
			string(t.Category),
			strconv.Itoa(t.Votes),
			strconv.Itoa(len(t.Participants)),
			strconv.Itoa(len(t.Questions)),
			strconv.Itoa(len(t.Resources)),
		})
	}
	table.Render()
}

func renderQuestions(topic domain.Topic) {
	if len(topic.Questions) == 0 {
		fmt.Printf("No questions on %q yet.\n", topic.Title)
		return
	}
	table := newTable([]string{"#", "Question", "Votes", "By", "Answer"})
	for i, q := range topic.Questions {
		answer := q.Answer
		if !q.Answered() {
			answer = "-"
		}
		table.Append([]string{strconv.Itoa(i + 1), q.Content, strconv.Itoa(q.Votes), q.AskedBy, answer})
	}
	table.Render()
}

func renderSlots(meeting domain.Meeting) {
	table := newTable([]string{"#", "Time", "Votes"})
	for i, slot := range meeting.Slots {
		table.Append([]string{strconv.Itoa(i + 1), slot.Label, strconv.Itoa(slot.Votes)})
	}
	table.Render()
}

func renderAgenda(agenda projection.Agenda) {
	fmt.Println(color.New(color.BgBlack, color.FgGreen).Render("  == " + agenda.ServerName + " =="))
	fmt.Println("Phase:", colorPhase(agenda.Phase))
	if agenda.SelectedTopic != "" {
		fmt.Println("Topic:", agenda.SelectedTopic)
	}
	if agenda.SelectedSlot != "" {
		fmt.Println("Time: ", agenda.SelectedSlot)
	}
	fmt.Println("Topic voting:", agenda.TopicCountdown, "| Time voting:", agenda.SlotCountdown)

	if len(agenda.Slots) > 0 {
		table := newTable([]string{"Time", "Votes", ""})
		for _, row := range agenda.Slots {
			marker := ""
			if row.Selected {
				marker = "selected"
			} else if row.Leading {
				marker = "leading"
			}
			table.Append([]string{row.Label, strconv.Itoa(row.Votes), marker})
		}
		table.Render()
	}

	if len(agenda.Leaderboard) > 0 {
		fmt.Println("Top topics:")
		table := newTable([]string{"Title", "Category", "Votes", "People"})
		for _, row := range agenda.Leaderboard {
			table.Append([]string{row.Title, string(row.Category), strconv.Itoa(row.Votes), strconv.Itoa(row.Participants)})
		}
		table.Render()
	}
}

func colorPhase(phase domain.Phase) string {
	switch phase {
	case domain.PhaseTopicSelection:
		return color.Yellow.Render(string(phase))
	case domain.PhaseTimeVoting:
		return color.Cyan.Render(string(phase))
	case domain.PhasePreparation:
		return color.Blue.Render(string(phase))
	default:
		return color.Green.Render(string(phase))
	}
}
