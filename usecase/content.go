package usecase

import (
	"context"
	"fmt"
	"image/color"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/sirupsen/logrus"
	"github.com/studibuch/riona/config"
	domainContent "github.com/studibuch/riona/domains/content"
)

const maxHashtags = 15

var imageHTTPClient = &http.Client{Timeout: 30 * time.Second}

var articleCaptionTemplates = []string{
	"📚 %s - Neuer Artikel in unserem Magazin! Schau vorbei auf studibuch.de",
	"Wusstest du schon? %s - Alle Details in unserem Magazin! Link in Bio.",
	"%s - Lies den vollständigen Artikel in unserem Magazin und entdecke mehr!",
	"Neuer Artikel: %s - Jetzt auf unserem Blog verfügbar! Klick den Link in der Bio.",
	"Spannende Einblicke: %s - Mehr dazu in unserem Magazin auf studibuch.de",
}

var topicCaptionTemplates = []string{
	"🤔 Was denkt ihr über \"%s\"? Teilt eure Gedanken! #studibuch #diskussion",
	"Heute im Fokus: %s. Ein wichtiges Thema für Studierende! #studium #{topic_hashtag}",
	"Lasst uns über %s sprechen! Eure Meinung ist gefragt. #studentenleben",
	"💡 Zum Nachdenken: %s. #inspiration #studibuch",
	"\"%s\" - relevant für uns alle. Mehr dazu bald? #wissen #studieren",
}

var articleBaseHashtags = []string{
	"#studibuch", "#studentenleben", "#studium", "#bücher",
	"#nachhaltigkeit", "#gebrauchtbücher", "#sparen", "#studieren",
}

var topicBaseHashtags = []string{
	"#studibuch", "#studentenleben", "#studium", "#bildung", "#diskussion", "#wissen",
}

var nonWordRe = regexp.MustCompile(`[^\wäöüß]+`)

// CaptionGenerator produces caption text and hashtag sets from fixed
// template pools, the way the magazine posts have always been written.
type CaptionGenerator struct{}

func NewCaptionGenerator() *CaptionGenerator {
	return &CaptionGenerator{}
}

func (g *CaptionGenerator) CaptionForArticle(title string) string {
	tpl := articleCaptionTemplates[rand.Intn(len(articleCaptionTemplates))]
	return fmt.Sprintf(tpl, title)
}

func (g *CaptionGenerator) CaptionForTopic(topic string) string {
	tpl := topicCaptionTemplates[rand.Intn(len(topicCaptionTemplates))]
	caption := fmt.Sprintf(tpl, topic)

	topicTag := strings.ToLower(topic)
	topicTag = nonWordRe.ReplaceAllString(topicTag, "")
	if runes := []rune(topicTag); len(runes) > 20 {
		topicTag = string(runes[:20])
	}
	return strings.ReplaceAll(caption, "#{topic_hashtag}", "#"+topicTag)
}

// HashtagsForArticle combines the base set with up to 7 tags derived from
// the title, categories and tags, unique and capped at 15.
func (g *CaptionGenerator) HashtagsForArticle(title string, categories, tags []string) []string {
	var specific []string
	for _, word := range splitWords(title) {
		if len(word) > 3 {
			specific = appendUnique(specific, "#"+word)
		}
	}
	for _, c := range categories {
		specific = appendUnique(specific, "#"+compactTag(c))
	}
	for _, t := range tags {
		specific = appendUnique(specific, "#"+compactTag(t))
	}
	if len(specific) > 7 {
		specific = specific[:7]
	}

	all := append([]string(nil), articleBaseHashtags...)
	for _, tag := range specific {
		all = appendUnique(all, tag)
	}
	if len(all) > maxHashtags {
		all = all[:maxHashtags]
	}
	return all
}

func (g *CaptionGenerator) HashtagsForTopic(topic string) []string {
	var topicTags []string
	for _, word := range splitWords(topic) {
		if len(word) > 3 {
			topicTags = appendUnique(topicTags, "#"+word)
		}
	}
	if len(topicTags) > 5 {
		topicTags = topicTags[:5]
	}

	all := append([]string(nil), topicBaseHashtags...)
	for _, tag := range topicTags {
		all = appendUnique(all, tag)
	}
	if len(all) > maxHashtags {
		all = all[:maxHashtags]
	}
	return all
}

// FullCaption is the caption followed by the hashtag block, ready to paste.
func FullCaption(caption string, hashtags []string) string {
	return caption + "\n\n" + strings.Join(hashtags, " ")
}

func splitWords(s string) []string {
	return strings.Fields(nonWordRe.ReplaceAllString(strings.ToLower(s), " "))
}

func compactTag(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
}

func appendUnique(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}

// ImageProvider resolves a local 1080x1080 image for a title. It prefers
// DALL-E generation when an API key is configured and falls back to a
// placeholder asset; errors never reach the caller.
type ImageProvider struct {
	cfg       config.OpenAIConfig
	imagesDir string
}

func NewImageProvider(cfg config.OpenAIConfig, imagesDir string) *ImageProvider {
	return &ImageProvider{cfg: cfg, imagesDir: imagesDir}
}

var _ domainContent.IImageProvider = (*ImageProvider)(nil)

func (p *ImageProvider) ImageFor(ctx context.Context, title string) string {
	if p.cfg.APIKey != "" {
		if path, err := p.generate(ctx, title); err == nil {
			return path
		} else {
			logrus.WithError(err).Warnf("[CONTENT] image generation failed for %q", title)
		}
	}
	return p.placeholder()
}

func (p *ImageProvider) generate(ctx context.Context, title string) (string, error) {
	client := openai.NewClient(option.WithAPIKey(p.cfg.APIKey))

	prompt := fmt.Sprintf(
		"Ein ansprechendes Bild zum Thema %q im Kontext von Studium, Büchern und Nachhaltigkeit. Stil: modern, ansprechend für Instagram.",
		title,
	)
	resp, err := client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt: prompt,
		N:      openai.Int(1),
		Size:   openai.ImageGenerateParamsSize1024x1024,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("no image url in response")
	}

	return p.downloadAndNormalize(ctx, resp.Data[0].URL, fmt.Sprintf("generated_%d.jpg", time.Now().UnixNano()))
}

// downloadAndNormalize fetches the image and center-crops it to the square
// format the feed uses.
func (p *ImageProvider) downloadAndNormalize(ctx context.Context, imageURL, name string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := imageHTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("download image: status=%d", resp.StatusCode)
	}

	img, err := imaging.Decode(resp.Body)
	if err != nil {
		return "", err
	}
	img = imaging.Fill(img, 1080, 1080, imaging.Center, imaging.Lanczos)

	if err := os.MkdirAll(p.imagesDir, 0o755); err != nil {
		return "", err
	}
	dest := filepath.Join(p.imagesDir, name)
	if err := imaging.Save(img, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// placeholder returns the shared fallback asset, creating a neutral one on
// first use.
func (p *ImageProvider) placeholder() string {
	dest := filepath.Join(p.imagesDir, "default_placeholder.jpg")
	if _, err := os.Stat(dest); err == nil {
		return dest
	}

	if err := os.MkdirAll(p.imagesDir, 0o755); err != nil {
		logrus.WithError(err).Error("[CONTENT] failed to create images dir")
		return dest
	}
	img := imaging.New(1080, 1080, color.NRGBA{R: 0x2d, G: 0x6a, B: 0x4f, A: 0xff})
	if err := imaging.Save(img, dest); err != nil {
		logrus.WithError(err).Error("[CONTENT] failed to write placeholder image")
	}
	return dest
}
