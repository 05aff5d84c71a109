package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a low-level error into a code and a user-facing
// message. Sensitive detail stays out of the message; the original
// error is expected to be logged by the caller.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Une erreur est survenue",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// PostgreSQL constraint violations
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		if strings.Contains(errStrLower, "email") {
			return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "Cette adresse e-mail est déjà utilisée"}
		}
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Cette donnée existe déjà"}
	}

	if strings.Contains(errStrLower, "foreign key constraint") {
		if strings.Contains(errStrLower, "wine_id") {
			return ErrorInfo{Code: WineNotFound, Message: "Ce vin n'existe pas"}
		}
		if strings.Contains(errStrLower, "user_id") {
			return ErrorInfo{Code: ResourceNotFound, Message: "Cet utilisateur n'existe pas"}
		}
		return ErrorInfo{Code: ResourceNotFound, Message: "Donnée référencée introuvable"}
	}

	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{Code: ValidationRequired, Message: "Un champ obligatoire est manquant"}
	}

	if strings.Contains(errStrLower, "check constraint") {
		if strings.Contains(errStrLower, "rating") {
			return ErrorInfo{Code: TastingInvalidRating, Message: "La note doit être comprise entre 1 et 5"}
		}
		return ErrorInfo{Code: ValidationInvalidInput, Message: "Valeur invalide"}
	}

	// Connection problems
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "Connexion au service impossible. Veuillez réessayer plus tard",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "cellar") || strings.Contains(contextLower, "cave") {
		return "Ce vin n'est pas dans votre cave"
	}
	if strings.Contains(contextLower, "wine") || strings.Contains(contextLower, "vin") {
		return "Vin non trouvé"
	}
	if strings.Contains(contextLower, "tasting") || strings.Contains(contextLower, "dégustation") {
		return "Dégustation non trouvée"
	}
	if strings.Contains(contextLower, "user") || strings.Contains(contextLower, "utilisateur") {
		return "Utilisateur non trouvé"
	}

	return "Donnée non trouvée"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") || strings.Contains(contextLower, "add") {
		return "Erreur lors de l'ajout. Veuillez réessayer plus tard"
	}
	if strings.Contains(contextLower, "update") {
		return "Erreur lors de la modification. Veuillez réessayer plus tard"
	}
	if strings.Contains(contextLower, "delete") || strings.Contains(contextLower, "remove") {
		return "Erreur lors de la suppression. Veuillez réessayer plus tard"
	}

	return "Une erreur est survenue. Veuillez réessayer plus tard"
}
