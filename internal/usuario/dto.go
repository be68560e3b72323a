package usuario

// ResumoUsuarioDTO reúne os principais dados e métricas do painel do usuário.
type ResumoUsuarioDTO struct {
	ID                   uint   `json:"id"`
	Nome                 string `json:"nome"`
	Email                string `json:"email"`
	Perfil               string `json:"perfil"`
	OAB                  string `json:"oab,omitempty"`
	Verificado           bool   `json:"verificado"`
	Saldo                int    `json:"saldo"`
	IsPremium            bool   `json:"isPremium"`
	CasosAtivos          int    `json:"casosAtivos"`
	CasosEncerrados      int    `json:"casosEncerrados"`
	NotificacoesNaoLidas int    `json:"notificacoesNaoLidas"`
}

// MontarResumoUsuarioDTO calcula as métricas a partir das coleções já buscadas.
func MontarResumoUsuarioDTO(u Usuario, statusCasos []string, naoLidas int) ResumoUsuarioDTO {
	ativos, encerrados := 0, 0
	for _, s := range statusCasos {
		switch s {
		case "Ativo":
			ativos++
		case "Encerrado":
			encerrados++
		}
	}
	return ResumoUsuarioDTO{
		ID:                   u.ID,
		Nome:                 u.Nome,
		Email:                u.Email,
		Perfil:               u.Perfil,
		OAB:                  u.OAB,
		Verificado:           u.Verificado,
		Saldo:                u.Saldo,
		IsPremium:            u.IsPremium,
		CasosAtivos:          ativos,
		CasosEncerrados:      encerrados,
		NotificacoesNaoLidas: naoLidas,
	}
}
