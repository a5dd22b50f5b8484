package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	en := language.English
	message.SetString(en, KeyDateAvailable, "Date is available")
	message.SetString(en, KeyDateUnavailable, "Selected delivery date is not available.")
	message.SetString(en, KeyDateRequired, "Please select a delivery date.")
	message.SetString(en, KeyInvalidFormat, "Invalid delivery date format.")
	message.SetString(en, KeySecurityFailed, "Security check failed")
	message.SetString(en, KeyCheckError, "Error checking date availability")
	message.SetString(en, KeyDeliveryDate, "Delivery date")
	message.SetString(en, KeySelectDate, "Select delivery date")
	message.SetString(en, KeyDeliveryDateSave, "Delivery date %s saved for order %s")

	ru := russian
	message.SetString(ru, KeyDateAvailable, "Дата доступна")
	message.SetString(ru, KeyDateUnavailable, "Выбранная дата доставки недоступна.")
	message.SetString(ru, KeyDateRequired, "Пожалуйста, выберите дату доставки.")
	message.SetString(ru, KeyInvalidFormat, "Неверный формат даты доставки.")
	message.SetString(ru, KeySecurityFailed, "Проверка безопасности не пройдена")
	message.SetString(ru, KeyCheckError, "Ошибка при проверке доступности даты")
	message.SetString(ru, KeyDeliveryDate, "Дата доставки")
	message.SetString(ru, KeySelectDate, "Выберите дату доставки")
	message.SetString(ru, KeyDeliveryDateSave, "Дата доставки %s сохранена для заказа %s")
}
