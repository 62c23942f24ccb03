package handlers

import (
	"fmt"

	"studybot/catalog"
)

// Shared user-facing texts. Per-category texts live in categoryUI.
const (
	textHelp = "🌟 **Добро пожаловать в вашего персонального помощника!** 🌟\n\n" +
		"Этот бот создан, чтобы помочь вам легко ориентироваться в учебных материалах. 📚💻\n\n" +
		"Вот что я могу для вас сделать:\n\n" +
		"✨ **/start** — начни путешествие с ботом! 🚀\n" +
		"✨ **/help** — нужна помощь? Я здесь, чтобы объяснить все! 💡\n" +
		"✨ **/support** — свяжитесь с администратором, если возникнут вопросы! 📩\n" +
		"✨ **/about** — узнайте больше о том, как я могу помочь вам в учебе! 🤖\n\n" +
		"🔍 **Не забудьте воспользоваться кнопками на клавиатуре для быстрого доступа к разделам.** 🖱️"

	textSupport = "📩 Связь с администратором\n\n[Написать администратору](https://t.me/yokai_di)"

	textAbout = "🤖 **О боте**\n\n" +
		"Привет! Я — твой персональный помощник для учебы в IT! 🎓💻\n\n" +
		"Этот бот создан для первокурсников IT-направления, чтобы ты мог легко ориентироваться " +
		"в учебных материалах и всегда быть на связи с самыми актуальными источниками. 🚀\n\n" +
		"Вот что я могу предложить:\n\n" +
		"📚 **Учебный план** — все курсы и лекции в одном месте.\n" +
		"📖 **Словарь IT-терминов** — запоминай термины с объяснениями!\n" +
		"🔗 **Полезные ресурсы** — переходи по ссылкам и открывай для себя мир IT!\n" +
		"👥 **Информация о группе** — для знакомства и общения с однокурсниками. 🤝\n\n" +
		"💡 **Бот постоянно обновляется.** Идеи по улучшению — в /support! 😊"

	textAdminWelcome = "👨‍💻 Добро пожаловать в админ-панель!"
	textAdminReturn  = "👨‍💻 Вы вернулись в админ-панель."
	textMainMenu     = "🏠 Главное меню."

	textAccessDenied = "⛔ У вас нет доступа к этой команде."
	textConfigError  = "⚠️ Ошибка конфигурации бота. Неверный формат ADMIN_IDS."
	textAccessFailed = "⚠️ Произошла ошибка при проверке прав доступа."

	textAskName        = "📝 Введите название:"
	textAskDescription = "📄 Введите описание:"
	textAskLink        = "🔗 Введите ссылку (http:// или https://):"
	textNameEmpty      = "⚠️ Название не может быть пустым. Попробуйте еще раз:"
	textLinkEmpty      = "⚠️ Ссылка не может быть пустой для этого элемента. Попробуйте снова:"
	textLinkBadPrefix  = "⚠️ Ссылка должна начинаться с http:// или https://. Попробуйте снова:"

	textAskPageNumber       = "🔢 Введите номер страницы:"
	textAskBrowsePageNumber = "🔢 Введите номер страницы, на которую хотите перейти:"
	textBrowseBadPage       = "🚫 Неверный номер страницы. Попробуйте снова."
	textBadPageFormat       = "⚠️ Неверный формат. Введите целое число."
	textStateError          = "⚠️ Ошибка состояния. Попробуйте снова."
	textCurrentPage         = "Вы на текущей странице."

	textTermsMenu = "🔤 Выберите способ поиска IT терминов:"
	textTermsByLetter = "Добро пожаловать в IT-словарь!\n\n" +
		"🔤 Введите букву, чтобы увидеть термины на неё (английскую или русскую).\n\n" +
		"🔘 Используйте кнопки навигации для удобного просмотра."
	textTermsEmpty       = "😕 В словаре пока нет терминов."
	textTermsLetterEmpty = "😕 Терминов на букву '%s' пока нет."
	textGroupsEmpty = "Информация отсутствует."

	textLoadError       = "⚠️ Произошла ошибка загрузки. Попробуйте снова."
	textPageUpdateError = "⚠️ Произошла ошибка при обновлении страницы."
	textDeleteBadPage   = "⚠️ Неверный номер страницы. Попробуйте снова:"
	textDeletePageRange = "⚠️ Неверный номер страницы. Введите число от 1 до %d:"
	textBadDeleteToken  = "⚠️ Ошибка: Неверный формат данных для удаления."
	textBadPageToken    = "⚠️ Ошибка: Неверный формат номера страницы."
	textBadJumpToken    = "⚠️ Ошибка: Неверный запрос страницы."

	labelBackToAdmin = "⬅️ Назад в админ панель"
	labelBackToMain  = "⬅️ Назад в главное меню"
)

func greeting(firstName string) string {
	return "🧠 Добро пожаловать в интеллектуальное пространство.\n\n" +
		fmt.Sprintf("Здравствуйте, %s.\n", firstName) +
		"🔍 Я — ваш цифровой помощник, созданный для того, чтобы помочь вам погрузиться " +
		"в учебный процесс и уверенно пройти путь первого курса.\n\n" +
		"🧭 Здесь вы найдёте структурированную информацию, полезные ресурсы и чёткие ответы.\n" +
		"Готовы двигаться вперёд? Выберите интересующий раздел ниже ⬇️"
}

// categoryUI groups every label and message template of one category.
type categoryUI struct {
	browseLabel string
	manageLabel string
	manageTitle string
	addLabel    string
	deleteLabel string

	deletedAlert      func(identifier string) string
	deleteMissedAlert func(identifier string) string
	deleteErrorAlert  string

	addedOK  func(name string) string
	addedDup func(name string) string
	addError string

	formatEntity func(e catalog.Entity) string
}

var categoryTexts = map[string]categoryUI{
	catalog.KeyCourse: {
		browseLabel: "📚 Учебный план",
		manageLabel: "📚 Управление учебным планом",
		manageTitle: "📚 Управление учебным планом:",
		addLabel:    "➕ Добавить курс",
		deleteLabel: "➖ Удалить курс",
		deletedAlert: func(id string) string {
			return fmt.Sprintf("Курс (ID: %s) успешно удален!", id)
		},
		deleteMissedAlert: func(id string) string {
			return fmt.Sprintf("Не удалось удалить курс с ID %s. Возможно, он уже удален.", id)
		},
		deleteErrorAlert: "⚠️ Произошла ошибка при удалении курса.",
		addedOK:          func(name string) string { return fmt.Sprintf("✅ '%s' успешно добавлен!", name) },
		addedDup: func(name string) string {
			return fmt.Sprintf("❌ Не удалось добавить '%s'. Возможно, он уже существует.", name)
		},
		addError: "⚠️ Произошла ошибка при добавлении.",
		formatEntity: func(e catalog.Entity) string {
			return fmt.Sprintf("📚 %s\n%s\n%s", e.Name, e.Description, linkOrStub(e.Link))
		},
	},
	catalog.KeyResource: {
		browseLabel: "🔗 Полезные ресурсы",
		manageLabel: "🔗 Управление полезными ресурсами",
		manageTitle: "🔗 Управление полезными ресурсами:",
		addLabel:    "➕ Добавить ресурс",
		deleteLabel: "➖ Удалить ресурс",
		deletedAlert: func(id string) string {
			return fmt.Sprintf("Ресурс (ID: %s) успешно удален!", id)
		},
		deleteMissedAlert: func(id string) string {
			return fmt.Sprintf("Не удалось удалить ресурс с ID %s. Возможно, он уже удален.", id)
		},
		deleteErrorAlert: "⚠️ Произошла ошибка при удалении ресурса.",
		addedOK:          func(name string) string { return fmt.Sprintf("✅ '%s' успешно добавлен!", name) },
		addedDup: func(name string) string {
			return fmt.Sprintf("❌ Не удалось добавить '%s'. Возможно, он уже существует.", name)
		},
		addError: "⚠️ Произошла ошибка при добавлении.",
		formatEntity: func(e catalog.Entity) string {
			return fmt.Sprintf("🔗 %s\n%s\n%s", e.Name, e.Description, linkOrStub(e.Link))
		},
	},
	catalog.KeyTerm: {
		browseLabel: "📖 Словарь IT терминов",
		manageLabel: "📖 Управление словарем IT терминов",
		manageTitle: "📖 Управление словарем IT терминов:",
		addLabel:    "➕ Добавить термин",
		deleteLabel: "➖ Удалить термин",
		deletedAlert: func(name string) string {
			return fmt.Sprintf("Термин '%s' успешно удален!", name)
		},
		deleteMissedAlert: func(name string) string {
			return fmt.Sprintf("Не удалось удалить термин '%s'. Проверьте имя.", name)
		},
		deleteErrorAlert: "⚠️ Произошла ошибка при удалении термина.",
		addedOK:          func(name string) string { return fmt.Sprintf("✅ Термин '%s' добавлен!", name) },
		addedDup: func(name string) string {
			return fmt.Sprintf("❌ Не удалось добавить термин '%s'. Возможно, он уже существует.", name)
		},
		addError: "⚠️ Произошла ошибка при добавлении термина.",
		formatEntity: func(e catalog.Entity) string {
			return fmt.Sprintf("🧠 %s\n%s", e.Name, e.Description)
		},
	},
	catalog.KeyGroup: {
		browseLabel: "👥 Группа ИНИТ",
		manageLabel: "👥 Управление группой ИНИТ",
		manageTitle: "👥 Управление группой ИНИТ:",
		addLabel:    "➕ Добавить группу",
		deleteLabel: "➖ Удалить группу",
		deletedAlert: func(id string) string {
			return fmt.Sprintf("Группа (ID: %s) успешно удалена!", id)
		},
		deleteMissedAlert: func(id string) string {
			return fmt.Sprintf("Не удалось удалить группу с ID %s. Возможно, она уже удалена.", id)
		},
		deleteErrorAlert: "⚠️ Произошла ошибка при удалении группы.",
		addedOK:          func(name string) string { return fmt.Sprintf("✅ '%s' успешно добавлен!", name) },
		addedDup: func(name string) string {
			return fmt.Sprintf("❌ Не удалось добавить '%s'. Возможно, он уже существует.", name)
		},
		addError: "⚠️ Произошла ошибка при добавлении.",
		formatEntity: func(e catalog.Entity) string {
			return fmt.Sprintf("👥 %s\n%s\n%s", e.Name, e.Description, linkOrStub(e.Link))
		},
	},
}

func linkOrStub(link string) string {
	if link == "" {
		return "Ссылки нет"
	}
	return link
}

func pageFooter(page, totalPages int) string {
	return fmt.Sprintf("\n\n📄 Страница %d из %d", page, totalPages)
}
