package i18n

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	StepAccount     = "stepAccount"
	StepShipping    = "stepShipping"
	StepPayment     = "stepPayment"
	AccountDetails  = "accountDetails"
	ShippingDetails = "shippingDetails"
	PaymentDetails  = "paymentDetails"
	EmailAddress    = "emailAddress"
	Password        = "password"
	FirstLine       = "firstLineAddress"
	StreetName      = "streetName"
	Postcode        = "postcode"
	SelectShipping  = "selectShipping"
	FreeDelivery    = "freeDelivery"
	ExpressDelivery = "expressDelivery"
	NameOnCard      = "nameOnCard"
	CardNumber      = "cardNumber"
	ExpMonth        = "expMonth"
	ExpYear         = "expYear"
	CVC             = "cvc"
	OrderSummary    = "orderSummary"
	Subtotal        = "subtotal"
	Tax             = "tax"
	Shipping        = "shipping"
	Total           = "total"
	CancelOrder     = "cancelOrder"
	CompleteOrder   = "completeOrder"
	OrderPlaced     = "orderPlaced"
	GenericError    = "genericError"
	ConfirmCancel   = "confirmCancel"
	Loading         = "loading"
	ItemCount       = "itemCount"
	ErrorEmail      = "errorEmail"
	ErrorPassword   = "errorPassword"
	ErrorRequired   = "errorRequired"
	ErrorCardNumber = "errorCardNumber"
	ErrorExpMonth   = "errorExpMonth"
	ErrorExpYear    = "errorExpYear"
	ErrorCVC        = "errorCVC"
)

var english = map[string]string{
	StepAccount:     "Account",
	StepShipping:    "Shipping",
	StepPayment:     "Payment",
	AccountDetails:  "Account details",
	ShippingDetails: "Shipping details",
	PaymentDetails:  "Payment details",
	EmailAddress:    "Email address",
	Password:        "Password",
	FirstLine:       "First line of address",
	StreetName:      "Street name",
	Postcode:        "Postcode",
	SelectShipping:  "Select shipping",
	FreeDelivery:    "Free delivery",
	ExpressDelivery: "Express (£5.00)",
	NameOnCard:      "Name on card",
	CardNumber:      "Card number",
	ExpMonth:        "Expiry month",
	ExpYear:         "Expiry year",
	CVC:             "CVC",
	OrderSummary:    "Order summary",
	Subtotal:        "Subtotal",
	Tax:             "Tax",
	Shipping:        "Shipping",
	Total:           "Total",
	CancelOrder:     "Cancel order",
	CompleteOrder:   "Complete order",
	OrderPlaced:     "Order placed successfully!",
	GenericError:    "An error occurred. Please try again.",
	ConfirmCancel:   "Are you sure you want to cancel the order?",
	Loading:         "Loading order summary...",
	ErrorEmail:      "Please enter a valid email address",
	ErrorPassword:   "Password must be at least 8 characters",
	ErrorRequired:   "This field is required",
	ErrorCardNumber: "Invalid card format (1234-5678)",
	ErrorExpMonth:   "MM",
	ErrorExpYear:    "YY",
	ErrorCVC:        "Invalid CVC",
}

var french = map[string]string{
	StepAccount:     "Compte",
	StepShipping:    "Livraison",
	StepPayment:     "Paiement",
	AccountDetails:  "Détails du compte",
	ShippingDetails: "Détails de livraison",
	PaymentDetails:  "Détails de paiement",
	EmailAddress:    "Adresse e-mail",
	Password:        "Mot de passe",
	FirstLine:       "Première ligne de l'adresse",
	StreetName:      "Nom de rue",
	Postcode:        "Code postal",
	SelectShipping:  "Choisir la livraison",
	FreeDelivery:    "Livraison gratuite",
	ExpressDelivery: "Express (5,00 £)",
	NameOnCard:      "Nom sur la carte",
	CardNumber:      "Numéro de carte",
	ExpMonth:        "Mois d'expiration",
	ExpYear:         "Année d'expiration",
	CVC:             "CVC",
	OrderSummary:    "Récapitulatif de commande",
	Subtotal:        "Sous-total",
	Tax:             "Taxe",
	Shipping:        "Livraison",
	Total:           "Total",
	CancelOrder:     "Annuler la commande",
	CompleteOrder:   "Valider la commande",
	OrderPlaced:     "Commande passée avec succès !",
	GenericError:    "Une erreur est survenue. Veuillez réessayer.",
	ConfirmCancel:   "Voulez-vous vraiment annuler la commande ?",
	Loading:         "Chargement du récapitulatif...",
	ErrorEmail:      "Veuillez saisir une adresse e-mail valide",
	ErrorPassword:   "Le mot de passe doit contenir au moins 8 caractères",
	ErrorRequired:   "Ce champ est obligatoire",
	ErrorCardNumber: "Format de carte invalide (1234-5678)",
	ErrorExpMonth:   "MM",
	ErrorExpYear:    "AA",
	ErrorCVC:        "CVC invalide",
}

// Supported lists the catalog languages; the first one is the fallback.
var Supported = []language.Tag{language.English, language.French}

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, messages := range map[language.Tag]map[string]string{
		language.English: english,
		language.French:  french,
	} {
		for key, msg := range messages {
			// Keys and messages are static, SetString cannot fail here.
			_ = b.SetString(tag, key, msg)
		}
	}

	_ = b.Set(language.English, ItemCount, plural.Selectf(1, "%d",
		"=1", "%d item",
		plural.Other, "%d items"))
	_ = b.Set(language.French, ItemCount, plural.Selectf(1, "%d",
		plural.One, "%d article",
		plural.Other, "%d articles"))
	return b
}
