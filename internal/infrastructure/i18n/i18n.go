package i18n

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// PreferenceStore persists the language preference for this profile.
// Language returns "" with a nil error when no preference is saved yet.
type PreferenceStore interface {
	Language(ctx context.Context) (string, error)
	SetLanguage(ctx context.Context, lang string) error
}

var supported = []language.Tag{
	language.French, // first entry is the fallback
	language.Arabic,
}

var matcher = language.NewMatcher(supported)

// Match resolves an arbitrary language preference ("ar", "ar-MA",
// "fr-FR;q=0.9", ...) to one of the supported codes, falling back to
// French on anything unrecognized.
func Match(pref string) string {
	if pref == "" {
		return "fr"
	}
	tags, _, err := language.ParseAcceptLanguage(pref)
	if err != nil || len(tags) == 0 {
		return "fr"
	}
	_, index, _ := matcher.Match(tags...)
	base, _ := supported[index].Base()
	return base.String()
}

// translations carries the storefront's user-facing strings per language.
var translations = map[string]map[string]string{
	"fr": {
		"add-to-cart":       "Ajouter au panier",
		"view-cart":         "Voir le panier",
		"checkout":          "Passer la commande",
		"cart-empty":        "Votre panier est vide",
		"continue-shopping": "Continuer vos achats",
		"remove":            "Supprimer",
		"quantity":          "Quantité",
		"total":             "Total",
		"all-categories":    "Toutes catégories",
		"search":            "Rechercher...",
		"currency":          "DH",
		"in-stock":          "En stock",
		"out-of-stock":      "Rupture de stock",
		"free-shipping":     "Livraison gratuite",
		"fast-delivery":     "Livraison rapide",
		"24h-support":       "Support 24h/24",
		"easy-returns":      "Retours faciles",
		"product-added":     "Produit ajouté au panier",
		"order-failed":      "La commande n'a pas pu être envoyée",
		"order-confirmed":   "Commande confirmée",
	},
	"ar": {
		"add-to-cart":       "أضف إلى السلة",
		"view-cart":         "عرض السلة",
		"checkout":          "الدفع",
		"cart-empty":        "سلتك فارغة",
		"continue-shopping": "متابعة التسوق",
		"remove":            "إزالة",
		"quantity":          "الكمية",
		"total":             "المجموع",
		"all-categories":    "جميع الفئات",
		"search":            "بحث...",
		"currency":          "درهم",
		"in-stock":          "متوفر",
		"out-of-stock":      "نفد من المخزون",
		"free-shipping":     "شحن مجاني",
		"fast-delivery":     "توصيل سريع",
		"24h-support":       "دعم ٢٤/٧",
		"easy-returns":      "إرجاع سهل",
		"product-added":     "تم إضافة المنتج إلى السلة",
		"order-failed":      "تعذر إرسال الطلب",
		"order-confirmed":   "تم تأكيد الطلب",
	},
}

// T looks up a translated string. Unknown keys come back verbatim so a
// missing translation degrades to the key, never to an error.
func T(lang, key string) string {
	table, ok := translations[lang]
	if !ok {
		table = translations["fr"]
	}
	if s, ok := table[key]; ok {
		return s
	}
	return key
}

// Manager holds the active language for the shop context and keeps the
// persisted preference in sync. Persistence failures are logged and
// swallowed; the in-memory choice stays authoritative for the session.
type Manager struct {
	mu      sync.RWMutex
	store   PreferenceStore
	logger  *zap.Logger
	current string
}

// NewManager creates a Manager, restoring the saved preference when one
// exists and falling back to defaultLang otherwise.
func NewManager(ctx context.Context, store PreferenceStore, defaultLang string, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{
		store:   store,
		logger:  logger,
		current: Match(defaultLang),
	}

	if store != nil {
		saved, err := store.Language(ctx)
		switch {
		case err != nil:
			logger.Warn("failed to load language preference, using default",
				zap.String("default", m.current), zap.Error(err))
		case saved != "":
			m.current = Match(saved)
		}
	}
	return m
}

// Language returns the active language code.
func (m *Manager) Language() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// SetLanguage switches the active language and persists the choice. The
// canonical code actually applied is returned.
func (m *Manager) SetLanguage(ctx context.Context, lang string) string {
	resolved := Match(lang)

	m.mu.Lock()
	m.current = resolved
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.SetLanguage(ctx, resolved); err != nil {
			m.logger.Warn("failed to persist language preference",
				zap.String("language", resolved), zap.Error(err))
		}
	}
	return resolved
}

// T translates a key in the active language.
func (m *Manager) T(key string) string {
	return T(m.Language(), key)
}
