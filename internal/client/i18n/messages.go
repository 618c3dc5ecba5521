package i18n

var builtin = map[string]map[string]string{
	"fr": {
		"nav.login":     "Connexion",
		"nav.register":  "Commencer",
		"nav.favorites": "Mes Favoris",
		"nav.profile":   "Profil",
		"nav.logout":    "Déconnexion",
		"nav.sectors":   "Secteurs",
		"nav.careers":   "Carrières",

		"common.error":   "Erreur",
		"common.success": "Succès",

		"error.generic":       "Une erreur est survenue",
		"error.network":       "Impossible de joindre le serveur",
		"error.session":       "Votre session a expiré, veuillez vous reconnecter",
		"error.not_logged_in": "Vous devez être connecté",
		"error.language":      "Langue non prise en charge : %s",
		"error.usage":         "Utilisation : %s",
		"error.unknown":       "Commande inconnue : %s",
		"error.counter":       "Compteur invalide : %s",
		"register.name":       "Le nom est obligatoire",
		"register.email":      "Adresse e-mail invalide",
		"register.password":   "Le mot de passe doit contenir au moins 6 caractères",
		"register.mismatch":   "Les mots de passe ne correspondent pas",
		"prompt.name":         "Nom complet",
		"prompt.email":        "Adresse e-mail",
		"prompt.password":     "Mot de passe : ",
		"prompt.confirm":      "Confirmer le mot de passe : ",
		"prompt.university":   "Université (facultatif)",
		"prompt.field":        "Domaine d'études (facultatif)",
		"prompt.year":         "Année d'études (facultatif)",
		"auth.welcome":        "Bienvenue, %s !",
		"auth.logged_out":     "Vous êtes déconnecté",
		"auth.anonymous":      "non connecté",
		"fav.added":           "Ajouté aux favoris : %s",
		"fav.removed":         "Retiré des favoris : %s",
		"fav.empty":           "Aucun favori pour le moment",
		"progress.saved":      "Progression enregistrée",
		"progress.line":       "Profil %d%% | Métiers explorés %d | Formations commencées %d | Compétences évaluées %d",
		"profile.saved":       "Profil mis à jour",
		"lang.current":        "Langue : %s",
		"lang.saved":          "Langue enregistrée : %s",
		"avatar.uploaded":     "Photo de profil envoyée",
		"jobs.empty":          "Aucun métier trouvé",
		"jobs.salary":         "Salaire : %d - %d %s",
		"repl.welcome":        "Bienvenue sur KONGENGA (tapez 'help' pour les commandes)",
		"repl.help.anonymous": "Commandes : register, login, sectors, jobs, job <id>, lang [code], help, exit",
		"repl.help.logged_in": "Commandes : whoami, profile, fav <id>, favs, progress <compteur=valeur>..., avatar <fichier>, sectors, jobs, job <id>, lang [code], logout, help, exit",
		"repl.bye":            "Au revoir !",
	},
	"en": {
		"nav.login":     "Login",
		"nav.register":  "Get Started",
		"nav.favorites": "My Favorites",
		"nav.profile":   "Profile",
		"nav.logout":    "Logout",
		"nav.sectors":   "Sectors",
		"nav.careers":   "Careers",

		"common.error":   "Error",
		"common.success": "Success",

		"error.generic":       "An error occurred",
		"error.network":       "Cannot reach the server",
		"error.session":       "Your session has expired, please log in again",
		"error.not_logged_in": "You must be logged in",
		"error.language":      "Unsupported language: %s",
		"error.usage":         "Usage: %s",
		"error.unknown":       "Unknown command: %s",
		"error.counter":       "Invalid counter: %s",
		"register.name":       "Name is required",
		"register.email":      "Invalid email address",
		"register.password":   "Password must be at least 6 characters",
		"register.mismatch":   "Passwords do not match",
		"prompt.name":         "Full name",
		"prompt.email":        "Email address",
		"prompt.password":     "Password: ",
		"prompt.confirm":      "Confirm password: ",
		"prompt.university":   "University (optional)",
		"prompt.field":        "Field of study (optional)",
		"prompt.year":         "Year of study (optional)",
		"auth.welcome":        "Welcome, %s!",
		"auth.logged_out":     "You are logged out",
		"auth.anonymous":      "not logged in",
		"fav.added":           "Added to favorites: %s",
		"fav.removed":         "Removed from favorites: %s",
		"fav.empty":           "No favorites yet",
		"progress.saved":      "Progress saved",
		"progress.line":       "Profile %d%% | Jobs explored %d | Trainings started %d | Skills assessed %d",
		"profile.saved":       "Profile updated",
		"lang.current":        "Language: %s",
		"lang.saved":          "Language saved: %s",
		"avatar.uploaded":     "Avatar uploaded",
		"jobs.empty":          "No jobs found",
		"jobs.salary":         "Salary: %d - %d %s",
		"repl.welcome":        "Welcome to KONGENGA (type 'help' for commands)",
		"repl.help.anonymous": "Commands: register, login, sectors, jobs, job <id>, lang [code], help, exit",
		"repl.help.logged_in": "Commands: whoami, profile, fav <id>, favs, progress <counter=value>..., avatar <file>, sectors, jobs, job <id>, lang [code], logout, help, exit",
		"repl.bye":            "Bye!",
	},
	"ln": {
		"nav.login":     "Kokota",
		"nav.register":  "Kobanda",
		"nav.favorites": "Ba préférés na ngai",
		"nav.profile":   "Profil na ngai",
		"nav.logout":    "Kobima",
		"nav.sectors":   "Ba secteurs",
		"nav.careers":   "Misala",
	},
	"sw": {
		"nav.login":     "Ingia",
		"nav.register":  "Anza",
		"nav.favorites": "Vipendwa Vyangu",
		"nav.profile":   "Wasifu",
		"nav.logout":    "Toka",
		"nav.sectors":   "Sekta",
		"nav.careers":   "Kazi",
	},
	"kg": {
		"nav.login":     "Kwiza",
		"nav.register":  "Bandika",
		"nav.favorites": "Bima bina kele",
		"nav.profile":   "Lutumu lua ngai",
		"nav.logout":    "Fioka",
		"nav.sectors":   "Ba secteurs",
		"nav.careers":   "Misala",
	},
}
