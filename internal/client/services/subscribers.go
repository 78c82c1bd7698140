package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/crownstore/internal/client/models"
	"github.com/dmitrijs2005/crownstore/internal/client/repositories/subscribers"
	"github.com/dmitrijs2005/crownstore/internal/common"
	"github.com/dmitrijs2005/crownstore/internal/logging"
)

var (
	phoneSeparators = regexp.MustCompile(`[\s\-\(\)]`)
	phonePattern    = regexp.MustCompile(`^(\+?234|0)[789]\d{9}$`)
)

const exportDateLayout = "2006-01-02"

// Classify tells an email from a phone number by its first signs: an "@"
// anywhere, or a leading digit.
func Classify(contact string) models.ContactType {
	contact = strings.TrimSpace(contact)
	switch {
	case strings.Contains(contact, "@"):
		return models.ContactEmail
	case contact != "" && contact[0] >= '0' && contact[0] <= '9':
		return models.ContactPhone
	}
	return models.ContactUnknown
}

func stripPhone(p string) string {
	return phoneSeparators.ReplaceAllString(p, "")
}

// normalizeContact is the dedup key of contact within its type.
func normalizeContact(contact string, t models.ContactType) string {
	if t == models.ContactPhone {
		return stripPhone(contact)
	}
	return strings.ToLower(contact)
}

func validContact(contact string, t models.ContactType) bool {
	switch t {
	case models.ContactEmail:
		return emailPattern.MatchString(contact)
	case models.ContactPhone:
		return phonePattern.MatchString(stripPhone(contact))
	}
	return false
}

func invalidContactError(t models.ContactType) error {
	switch t {
	case models.ContactEmail:
		return common.ErrInvalidSubscriberEmail
	case models.ContactPhone:
		return common.ErrInvalidSubscriberPhone
	}
	return common.ErrInvalidFormat
}

// SubscriberService is the newsletter contact list.
type SubscriberService interface {
	Subscribe(ctx context.Context, contact string) (*models.Subscriber, error)
	SubscribeFrom(ctx context.Context, contact, source string) (*models.Subscriber, error)
	All(ctx context.Context) ([]models.Subscriber, error)
	Stats(ctx context.Context) (models.SubscriberStats, error)
	Search(ctx context.Context, query string) ([]models.Subscriber, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	ExportList(ctx context.Context, w io.Writer) error
}

type subscriberService struct {
	repo subscribers.Repository
	log  logging.Logger
	now  func() time.Time
}

func NewSubscriberService(repo subscribers.Repository, log logging.Logger) SubscriberService {
	if log == nil {
		log = logging.Nop()
	}
	return &subscriberService{repo: repo, log: log.With("component", "subscribers"), now: time.Now}
}

func (s *subscriberService) Subscribe(ctx context.Context, contact string) (*models.Subscriber, error) {
	return s.SubscribeFrom(ctx, contact, models.SourceWebsiteFooter)
}

func (s *subscriberService) SubscribeFrom(ctx context.Context, contact, source string) (*models.Subscriber, error) {
	contact = strings.TrimSpace(contact)
	kind := Classify(contact)

	if !validContact(contact, kind) {
		return nil, invalidContactError(kind)
	}

	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load subscribers: %w", err)
	}
	key := normalizeContact(contact, kind)
	for _, sub := range all {
		if sub.Type == kind && normalizeContact(sub.Contact, sub.Type) == key {
			if kind == models.ContactPhone {
				return nil, common.ErrPhoneSubscribed
			}
			return nil, common.ErrEmailSubscribed
		}
	}

	if source == "" {
		source = models.SourceWebsiteFooter
	}
	sub := models.Subscriber{
		ID:           newID(subscriberIDPrefix),
		Contact:      contact,
		Type:         kind,
		SubscribedAt: s.now().UTC(),
		Source:       source,
		Status:       models.SubscriberActive,
	}
	if err := s.repo.Save(ctx, append(all, sub)); err != nil {
		return nil, fmt.Errorf("save subscribers: %w", err)
	}

	s.log.Info(ctx, "subscribed", "type", kind, "contact", logging.MaskContact(contact), "source", source)
	return &sub, nil
}

func (s *subscriberService) All(ctx context.Context) ([]models.Subscriber, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load subscribers: %w", err)
	}
	return all, nil
}

func (s *subscriberService) Stats(ctx context.Context) (models.SubscriberStats, error) {
	all, err := s.All(ctx)
	if err != nil {
		return models.SubscriberStats{}, err
	}

	now := s.now()
	st := models.SubscriberStats{Total: len(all)}
	for _, sub := range all {
		switch sub.Type {
		case models.ContactEmail:
			st.Emails++
		case models.ContactPhone:
			st.Phones++
		}
		if sameMonth(sub.SubscribedAt, now) {
			st.ThisMonth++
		}
	}
	return st, nil
}

func (s *subscriberService) Search(ctx context.Context, query string) ([]models.Subscriber, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}

	out := []models.Subscriber{}
	for _, sub := range all {
		if strings.Contains(strings.ToLower(sub.Contact), q) {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *subscriberService) ExportCSV(ctx context.Context, w io.Writer) error {
	all, err := s.All(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Contact", "Type", "Subscribed Date", "Source", "Status"}); err != nil {
		return err
	}
	for _, sub := range all {
		rec := []string{
			sub.ID,
			sub.Contact,
			string(sub.Type),
			sub.SubscribedAt.Format(exportDateLayout),
			sub.Source,
			sub.Status,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *subscriberService) ExportList(ctx context.Context, w io.Writer) error {
	all, err := s.All(ctx)
	if err != nil {
		return err
	}

	var emails, phones []string
	for _, sub := range all {
		switch sub.Type {
		case models.ContactEmail:
			emails = append(emails, sub.Contact)
		case models.ContactPhone:
			phones = append(phones, sub.Contact)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total Subscribers: %d\n", len(all))
	writeGroup(&b, "EMAIL SUBSCRIBERS", emails)
	writeGroup(&b, "PHONE SUBSCRIBERS", phones)

	_, err = io.WriteString(w, b.String())
	return err
}

func writeGroup(b *strings.Builder, title string, contacts []string) {
	fmt.Fprintf(b, "\n%s (%d):\n", title, len(contacts))
	for i, c := range contacts {
		fmt.Fprintf(b, "%d. %s\n", i+1, c)
	}
}
