package main

// Scorecard is an ordered, immutable catalog of scoring criteria.
type Scorecard []ScorecardCriterion

// DefaultScorecard is the v1.2025 quantitative monitoring rubric.
// Weights sum to exactly 100.
var DefaultScorecard = Scorecard{
	// 1. Abertura (14 pts)
	{ID: "1.1", Category: "1. Abertura", Name: "1.1 Script e Personalização", Description: "Iniciou em até 5s, seguiu script e personalizou.", Weight: 3},
	{ID: "1.2", Category: "1. Abertura", Name: "1.2 Receptividade", Description: "Abertura positiva e perguntou como gostaria de ser chamado.", Weight: 2},
	{ID: "1.3", Category: "1. Abertura", Name: "1.3 Proatividade", Description: "Perguntou como ajudar antes de pedir dados.", Weight: 2},
	{ID: "1.4", Category: "1. Abertura", Name: "1.4 Segurança LGPD", Description: "Confirmação de dados conforme script de segurança.", Weight: 3},
	{ID: "1.5", Category: "1. Abertura", Name: "1.5 Sondagem Sistêmica", Description: "Verificou histórico para evitar repetição.", Weight: 4},

	// 2. Atualização Cadastral (14 pts)
	{ID: "2.1", Category: "2. Atualização Cadastral", Name: "2.1 Titularidade", Description: "Confirmou nome do titular/abriu SS se necessário.", Weight: 3},
	{ID: "2.2", Category: "2. Atualização Cadastral", Name: "2.2 Endereço UC", Description: "Confirmou endereço/abriu SS se necessário.", Weight: 3},
	{ID: "2.3", Category: "2. Atualização Cadastral", Name: "2.3 Inclusão de RG", Description: "Atualizou RG quando necessário.", Weight: 3},
	{ID: "2.4", Category: "2. Atualização Cadastral", Name: "2.4 Data de Nascimento", Description: "Atualizou data de nascimento no cadastro.", Weight: 5},

	// 4. Diálogo (35 pts)
	{ID: "4.1", Category: "4. Diálogo", Name: "4.1 Empatia e Cordialidade", Description: "Interesse, paciência e equilíbrio emocional.", Weight: 7},
	{ID: "4.2", Category: "4. Diálogo", Name: "4.2 Personalização Contínua", Description: "Chamou pelo nome preferido durante o atendimento.", Weight: 3},
	{ID: "4.3", Category: "4. Diálogo", Name: "4.3 Concentração", Description: "Atenção ao relato sem pedir repetição.", Weight: 4},
	{ID: "4.4", Category: "4. Diálogo", Name: "4.4 Norma Culta e Registro", Description: "Escrita/fala sem gírias e registro completo.", Weight: 3},
	{ID: "4.5", Category: "4. Diálogo", Name: "4.5 Gestão de Espera", Description: "Som ambiente ou mudo correto (retorno < 1min).", Weight: 5},
	{ID: "4.6", Category: "4. Diálogo", Name: "4.6 Ritmo de Fala", Description: "Sem pressa ou interrupções.", Weight: 3},
	{ID: "4.7", Category: "4. Diálogo", Name: "4.7 Protocolo", Description: "Informou protocolo pausadamente (mesmo se recusado).", Weight: 3},
	{ID: "4.8", Category: "4. Diálogo", Name: "4.8 Script Ocorrência Técnica", Description: "Seguiu script para evitar DSES.", Weight: 7},

	// 5. Conhecimento (20 pts)
	{ID: "5.1", Category: "5. Conhecimento", Name: "5.1 Conhecimento Técnico", Description: "Demonstrou domínio dos procedimentos.", Weight: 5},
	{ID: "5.2", Category: "5. Conhecimento", Name: "5.2 Resolutividade", Description: "Atendimento completo e esclarecedor.", Weight: 5},
	{ID: "5.3", Category: "5. Conhecimento", Name: "5.3 Tipologia Correta", Description: "Registrou a demanda na categoria correta.", Weight: 3},
	{ID: "5.5", Category: "5. Conhecimento", Name: "5.5 Argumentação de Reclamação", Description: "Argumentou para evitar abertura de reclamação.", Weight: 4},
	{ID: "5.6", Category: "5. Conhecimento", Name: "5.6 Resolução 1000", Description: "Deixou claro se era informação ou reclamação.", Weight: 3},

	// 6. Finalização (8 pts)
	{ID: "6.1", Category: "6. Finalização", Name: "6.1 Canais Digitais", Description: "Orientou sobre canais digitais.", Weight: 3},
	{ID: "6.2", Category: "6. Finalização", Name: "6.2 Ajuda Adicional", Description: "Perguntou se podia ajudar com algo mais.", Weight: 2},
	{ID: "6.3", Category: "6. Finalização", Name: "6.3 Script Positivo", Description: "Encerramento prazeroso e educado.", Weight: 2},
	{ID: "6.4", Category: "6. Finalização", Name: "6.4 Pesquisa de Satisfação", Description: "Direcionou para a pesquisa.", Weight: 1},

	// Bônus Automático (9 pts)
	{ID: "BONUS", Category: "Sistema", Name: "Bônus Operacional Automático", Description: "Pontuação atribuída automaticamente a todas as monitorias.", Weight: 9},
}

// autoConformeIDs are items whose outcome is fixed by business policy:
// always CONFORME with full credit, never left to the evaluator's
// judgment. The guarantee is enforced locally around the scoring call.
var autoConformeIDs = []string{"BONUS", "2.3", "2.4", "4.4", "4.7"}

func (s Scorecard) ByID(id string) (ScorecardCriterion, bool) {
	for _, c := range s {
		if c.ID == id {
			return c, true
		}
	}
	return ScorecardCriterion{}, false
}

// TotalWeight returns the point budget of the catalog.
func (s Scorecard) TotalWeight() int {
	sum := 0
	for _, c := range s {
		sum += c.Weight
	}
	return sum
}

// RubricGroup is one scorecard category with its criteria in catalog order.
type RubricGroup struct {
	Category string               `json:"category"`
	Criteria []ScorecardCriterion `json:"criteria"`
}

// Groups returns the catalog grouped by category, categories in
// first-seen order.
func (s Scorecard) Groups() []RubricGroup {
	grouped := groupBy(s, func(c ScorecardCriterion) string { return c.Category })
	out := make([]RubricGroup, 0, len(grouped))
	for _, g := range grouped {
		out = append(out, RubricGroup{Category: g.Key, Criteria: g.Items})
	}
	return out
}

// IsAutoConforme reports whether the item's outcome is fixed by policy.
func (s Scorecard) IsAutoConforme(id string) bool {
	for _, fixed := range autoConformeIDs {
		if fixed == id {
			if _, ok := s.ByID(id); ok {
				return true
			}
		}
	}
	return false
}

// AutoConformeCriteria returns the policy-fixed items present in the catalog.
func (s Scorecard) AutoConformeCriteria() []ScorecardCriterion {
	var out []ScorecardCriterion
	for _, id := range autoConformeIDs {
		if c, ok := s.ByID(id); ok {
			out = append(out, c)
		}
	}
	return out
}
