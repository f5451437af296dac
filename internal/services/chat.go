package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/edulearn/edulearn-backend/internal/clients/groq"
	"github.com/edulearn/edulearn-backend/internal/clients/wikipedia"
	"github.com/edulearn/edulearn-backend/internal/logger"
)

// ConnectionIssuesReply closes the fallback chain when every layer fails.
const ConnectionIssuesReply = "I am having connection issues. Please try again!"

const wikiBackupPrefix = "AI is busy, but here is info from Wiki: "

// cannedReplies answer low-effort greetings without an AI round trip.
var cannedReplies = map[string]string{
	"hi":          "Hello! I am EduLearn Tutor. How can I help you today? 👋",
	"hello":       "Hi there! Ready to learn something new?",
	"hey":         "Hey! Ask me any question about Science or Math.",
	"who are you": "I am an AI Tutor powered by Llama 3! 🤖",
	"help":        "I can help! Just ask me a specific question.",
	"thanks":      "You're welcome! Happy learning! 🎓",
	"bye":         "Goodbye! See you next time.",
}

// stopwords are stripped before the encyclopedia backup search so "what is
// photosynthesis" searches for "photosynthesis".
var stopwords = map[string]bool{
	"how": true, "to": true, "what": true, "is": true, "explain": true,
	"can": true, "you": true, "tell": true, "me": true, "about": true,
	"the": true, "a": true, "an": true, "does": true, "do": true,
	"made": true, "make": true, "at": true, "night": true,
}

var wordPattern = regexp.MustCompile(`\w+`)

type ChatService interface {
	// Reply runs the layered tutor chain: canned replies, then the chat
	// model, then an encyclopedia summary, then a fixed apology. It never
	// fails.
	Reply(ctx context.Context, message string) string
}

type chatStep func(ctx context.Context, message string) (string, bool)

type chatService struct {
	log   *logger.Logger
	steps []chatStep
}

func NewChatService(log *logger.Logger, chat groq.Client, wiki wikipedia.Client) ChatService {
	s := &chatService{log: log.With("service", "ChatService")}
	s.steps = []chatStep{
		s.cannedStep(),
		s.modelStep(chat),
		s.wikiStep(wiki),
	}
	return s
}

func (s *chatService) Reply(ctx context.Context, message string) string {
	message = strings.TrimSpace(message)
	for _, step := range s.steps {
		if reply, ok := step(ctx, message); ok {
			return reply
		}
	}
	return ConnectionIssuesReply
}

func (s *chatService) cannedStep() chatStep {
	return func(_ context.Context, message string) (string, bool) {
		reply, ok := cannedReplies[strings.ToLower(message)]
		return reply, ok
	}
}

func (s *chatService) modelStep(chat groq.Client) chatStep {
	return func(ctx context.Context, message string) (string, bool) {
		reply, err := chat.Complete(ctx, message)
		if err != nil {
			s.log.Warn("Chat model failed, falling back", "error", err)
			return "", false
		}
		return reply, true
	}
}

func (s *chatService) wikiStep(wiki wikipedia.Client) chatStep {
	return func(ctx context.Context, message string) (string, bool) {
		titles, err := wiki.Search(ctx, extractKeywords(message))
		if err != nil || len(titles) == 0 {
			return "", false
		}
		summary, err := wiki.Summary(ctx, titles[0], 3)
		if err != nil {
			return "", false
		}
		return wikiBackupPrefix + summary, true
	}
}

func extractKeywords(text string) string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	kept := words[:0]
	for _, w := range words {
		if !stopwords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}
