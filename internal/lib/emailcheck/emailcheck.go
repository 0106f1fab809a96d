// Package emailcheck содержит синтаксическую проверку адреса электронной почты.
package emailcheck

import "strings"

// IsValid возвращает true, если адрес содержит локальную часть, символ @
// и домен с точкой. Этого достаточно для отсечения явно неверного ввода;
// подтверждением владения адресом служит письмо со ссылкой сброса.
func IsValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
