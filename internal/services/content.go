package services

import (
	"errors"
	"time"

	"folio/internal/models"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// ContentService is plain CRUD over the portfolio content tables. Admin
// mutations are audit-logged; there is no derived computation here.
type ContentService struct {
	db    *gorm.DB
	audit *AuditService
}

func NewContentService(db *gorm.DB, audit *AuditService) *ContentService {
	return &ContentService{
		db:    db,
		audit: audit,
	}
}

// --- Profile (single record) ---

func (s *ContentService) GetProfile() (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (s *ContentService) SaveProfile(profile *models.Profile, ip string) error {
	var existing models.Profile
	err := s.db.First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.db.Create(profile).Error; err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		profile.ID = existing.ID
		profile.UpdatedAt = time.Now()
		if err := s.db.Save(profile).Error; err != nil {
			return err
		}
	}
	s.audit.LogAction("SAVE_PROFILE", profile.Name, nil, ip)
	return nil
}

// --- Projects ---

func (s *ContentService) ListProjects() ([]models.Project, error) {
	var projects []models.Project
	err := s.db.Order("sort_order asc, created_at desc").Find(&projects).Error
	return projects, err
}

func (s *ContentService) CreateProject(p *models.Project, ip string) error {
	if err := s.db.Create(p).Error; err != nil {
		return err
	}
	s.audit.LogAction("CREATE_PROJECT", p.Title, nil, ip)
	return nil
}

func (s *ContentService) UpdateProject(p *models.Project, ip string) error {
	if err := s.requireExists(&models.Project{}, p.ID); err != nil {
		return err
	}
	p.UpdatedAt = time.Now()
	if err := s.db.Save(p).Error; err != nil {
		return err
	}
	s.audit.LogAction("UPDATE_PROJECT", p.Title, nil, ip)
	return nil
}

func (s *ContentService) DeleteProject(id uint, ip string) error {
	if err := s.requireExists(&models.Project{}, id); err != nil {
		return err
	}
	if err := s.db.Delete(&models.Project{}, id).Error; err != nil {
		return err
	}
	s.audit.LogAction("DELETE_PROJECT", "", map[string]interface{}{"id": id}, ip)
	return nil
}

// --- Blog posts ---

func (s *ContentService) ListBlogPosts(publishedOnly bool) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	q := s.db.Order("created_at desc")
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	err := q.Find(&posts).Error
	return posts, err
}

func (s *ContentService) GetBlogPost(slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := s.db.Where("slug = ?", slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *ContentService) CreateBlogPost(post *models.BlogPost, ip string) error {
	var existing models.BlogPost
	if err := s.db.Where("slug = ?", post.Slug).First(&existing).Error; err == nil {
		return errors.New("slug already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if post.Published && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}
	if err := s.db.Create(post).Error; err != nil {
		return err
	}
	s.audit.LogAction("CREATE_POST", post.Slug, nil, ip)
	return nil
}

func (s *ContentService) UpdateBlogPost(post *models.BlogPost, ip string) error {
	if err := s.requireExists(&models.BlogPost{}, post.ID); err != nil {
		return err
	}
	if post.Published && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}
	post.UpdatedAt = time.Now()
	if err := s.db.Save(post).Error; err != nil {
		return err
	}
	s.audit.LogAction("UPDATE_POST", post.Slug, nil, ip)
	return nil
}

func (s *ContentService) DeleteBlogPost(id uint, ip string) error {
	if err := s.requireExists(&models.BlogPost{}, id); err != nil {
		return err
	}
	if err := s.db.Delete(&models.BlogPost{}, id).Error; err != nil {
		return err
	}
	s.audit.LogAction("DELETE_POST", "", map[string]interface{}{"id": id}, ip)
	return nil
}

// --- LinkedIn posts ---

func (s *ContentService) ListLinkedInPosts() ([]models.LinkedInPost, error) {
	var posts []models.LinkedInPost
	err := s.db.Order("posted_at desc").Find(&posts).Error
	return posts, err
}

func (s *ContentService) CreateLinkedInPost(post *models.LinkedInPost, ip string) error {
	if err := s.db.Create(post).Error; err != nil {
		return err
	}
	s.audit.LogAction("CREATE_LINKEDIN_POST", post.URL, nil, ip)
	return nil
}

func (s *ContentService) DeleteLinkedInPost(id uint, ip string) error {
	if err := s.requireExists(&models.LinkedInPost{}, id); err != nil {
		return err
	}
	if err := s.db.Delete(&models.LinkedInPost{}, id).Error; err != nil {
		return err
	}
	s.audit.LogAction("DELETE_LINKEDIN_POST", "", map[string]interface{}{"id": id}, ip)
	return nil
}

// --- Certificates ---

func (s *ContentService) ListCertificates() ([]models.Certificate, error) {
	var certs []models.Certificate
	err := s.db.Order("issued_at desc").Find(&certs).Error
	return certs, err
}

func (s *ContentService) CreateCertificate(cert *models.Certificate, ip string) error {
	if err := s.db.Create(cert).Error; err != nil {
		return err
	}
	s.audit.LogAction("CREATE_CERTIFICATE", cert.Title, nil, ip)
	return nil
}

func (s *ContentService) UpdateCertificate(cert *models.Certificate, ip string) error {
	if err := s.requireExists(&models.Certificate{}, cert.ID); err != nil {
		return err
	}
	if err := s.db.Save(cert).Error; err != nil {
		return err
	}
	s.audit.LogAction("UPDATE_CERTIFICATE", cert.Title, nil, ip)
	return nil
}

func (s *ContentService) DeleteCertificate(id uint, ip string) error {
	if err := s.requireExists(&models.Certificate{}, id); err != nil {
		return err
	}
	if err := s.db.Delete(&models.Certificate{}, id).Error; err != nil {
		return err
	}
	s.audit.LogAction("DELETE_CERTIFICATE", "", map[string]interface{}{"id": id}, ip)
	return nil
}

// --- Timeline ---

func (s *ContentService) ListTimeline() ([]models.TimelineEvent, error) {
	var events []models.TimelineEvent
	err := s.db.Order("start_at desc").Find(&events).Error
	return events, err
}

func (s *ContentService) CreateTimelineEvent(ev *models.TimelineEvent, ip string) error {
	if err := s.db.Create(ev).Error; err != nil {
		return err
	}
	s.audit.LogAction("CREATE_TIMELINE_EVENT", ev.Title, nil, ip)
	return nil
}

func (s *ContentService) UpdateTimelineEvent(ev *models.TimelineEvent, ip string) error {
	if err := s.requireExists(&models.TimelineEvent{}, ev.ID); err != nil {
		return err
	}
	ev.UpdatedAt = time.Now()
	if err := s.db.Save(ev).Error; err != nil {
		return err
	}
	s.audit.LogAction("UPDATE_TIMELINE_EVENT", ev.Title, nil, ip)
	return nil
}

func (s *ContentService) DeleteTimelineEvent(id uint, ip string) error {
	if err := s.requireExists(&models.TimelineEvent{}, id); err != nil {
		return err
	}
	if err := s.db.Delete(&models.TimelineEvent{}, id).Error; err != nil {
		return err
	}
	s.audit.LogAction("DELETE_TIMELINE_EVENT", "", map[string]interface{}{"id": id}, ip)
	return nil
}

func (s *ContentService) requireExists(model interface{}, id uint) error {
	err := s.db.First(model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
