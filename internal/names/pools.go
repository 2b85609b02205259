package names

var firstNames = []string{
	"Aleksi", "Anders", "Andrei", "Anton", "Artem", "Auston", "Axel",
	"Ben", "Blake", "Brady", "Brandon", "Brayden", "Brock", "Calle",
	"Cam", "Carter", "Casey", "Charlie", "Chris", "Cole", "Colton",
	"Connor", "Dallas", "Damon", "Daniel", "Danil", "Dante", "Darcy",
	"David", "Dawson", "Derek", "Dmitri", "Drake", "Dylan", "Easton",
	"Eeli", "Elias", "Emil", "Erik", "Ethan", "Evan", "Filip", "Finn",
	"Gabriel", "Gavin", "Grant", "Gustav", "Haydn", "Henrik", "Hudson",
	"Hugo", "Ilya", "Isaac", "Ivan", "Jack", "Jacob", "Jake", "Jakub",
	"Jani", "Jared", "Jesse", "Joel", "Johan", "Jonas", "Jordan",
	"Joona", "Josh", "Juho", "Jukka", "Julian", "Kaapo", "Kai", "Kalle",
	"Kasper", "Keegan", "Kirill", "Kyle", "Lars", "Leo", "Liam", "Logan",
	"Luca", "Lucas", "Lukas", "Magnus", "Maksim", "Marcus", "Mario",
	"Markus", "Mason", "Mats", "Matt", "Mikael", "Mikko", "Miles",
	"Mitch", "Nathan", "Nico", "Niklas", "Nikolai", "Noah", "Nolan",
	"Oliver", "Olli", "Oskar", "Otto", "Owen", "Parker", "Patrik",
	"Pavel", "Petr", "Quinn", "Rasmus", "Reid", "Riley", "Robin",
	"Roman", "Ryan", "Sami", "Sampo", "Sasha", "Sean", "Sebastian",
	"Sergei", "Seth", "Shane", "Simon", "Spencer", "Stefan", "Teemu",
	"Theo", "Thomas", "Timo", "Tobias", "Travis", "Trevor", "Tristan",
	"Tyler", "Urho", "Valtteri", "Viktor", "Ville", "Vladimir", "Wade",
	"Will", "William", "Wyatt", "Zach", "Zane",
}

var lastNames = []string{
	"Aaltonen", "Abrahamsson", "Ahlberg", "Andersen", "Antonov",
	"Armstrong", "Bachman", "Barkov", "Bauer", "Beaulieu", "Becker",
	"Bergeron", "Berggren", "Bishop", "Bjork", "Blackwood", "Blomqvist",
	"Bouchard", "Boudreau", "Brennan", "Brodin", "Burns", "Callahan",
	"Carlsson", "Chenier", "Chernov", "Clark", "Colton", "Cormier",
	"Coyle", "Crane", "Dahlstrom", "Davidson", "Deschamps", "Dubois",
	"Duchene", "Ekholm", "Eklund", "Engstrom", "Eriksson", "Fedorov",
	"Ferland", "Fischer", "Fleury", "Forsberg", "Fournier", "Fransson",
	"Gagnon", "Gallagher", "Gauthier", "Girard", "Granlund", "Gross",
	"Gustafsson", "Haapala", "Hagen", "Hakala", "Halverson", "Hamilton",
	"Hansen", "Harju", "Hartman", "Heikkinen", "Hendricks", "Hiller",
	"Hoffman", "Holmberg", "Holmgren", "Hughes", "Hutton", "Ivanov",
	"Jankowski", "Jansson", "Jarvinen", "Jensen", "Johansson", "Jokinen",
	"Kaplan", "Karlsson", "Kase", "Kelly", "Kivisto", "Kovalenko",
	"Kozlov", "Kraft", "Kulikov", "Laakso", "Lachance", "Lagesson",
	"Laine", "Lambert", "Larsson", "Lavoie", "LeBlanc", "Lehtinen",
	"Lemieux", "Lindberg", "Lindgren", "Lindqvist", "Lundstrom",
	"MacDonald", "Makarov", "Malone", "Marchand", "Martin", "Mathews",
	"McAvoy", "McBride", "McCann", "Mercer", "Meyer", "Mikkola",
	"Morozov", "Mueller", "Nakamura", "Nielsen", "Niemi", "Novak",
	"Nurmi", "Nylund", "OConnor", "Ohlsson", "Olofsson", "Orlov",
	"Paquette", "Pearson", "Pelletier", "Peltola", "Petrov", "Poirier",
	"Pulkkinen", "Quist", "Rantanen", "Rasmussen", "Reinhart", "Renner",
	"Riedel", "Roy", "Ruotsalainen", "Saarinen", "Salo", "Sandberg",
	"Schaefer", "Schmidt", "Seppala", "Sherwood", "Sikora", "Sjoberg",
	"Skoglund", "Smirnov", "Sokolov", "Sorensen", "Stark", "Stenberg",
	"Sullivan", "Sundqvist", "Tanaka", "Tremblay", "Turcotte", "Vainio",
	"Vasiliev", "Virtanen", "Volkov", "Wahlstrom", "Walker", "Wallin",
	"Weber", "Westerlund", "Whitfield", "Wikstrom", "Winter", "Wolf",
	"Yamamoto", "Zetterberg", "Zimmerman",
}
